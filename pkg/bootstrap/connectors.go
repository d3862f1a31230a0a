package bootstrap

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"mqbroker/internal/config"
	"mqbroker/internal/logger"
	"mqbroker/pkg/health"
)

// Connector opens the client connections used by event publishers.
type Connector struct {
	Config *config.Config
	Logger logger.Logger
}

func NewConnector(cfg *config.Config, log logger.Logger) *Connector {
	return &Connector{
		Config: cfg,
		Logger: log,
	}
}

func (c *Connector) InitRedis(ctx context.Context) (*redis.Client, error) {
	rcfg := c.Config.Events.Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     health.HostPort(rcfg.Host, rcfg.Port),
		Password: rcfg.Password,
		DB:       rcfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	c.Logger.Infow("Redis connected successfully", "addr", health.HostPort(rcfg.Host, rcfg.Port))
	return rdb, nil
}

func (c *Connector) InitRabbitMQ(ctx context.Context) (*amqp.Connection, error) {
	conn, err := amqp.DialConfig(c.Config.Events.RabbitMQ.URL, amqp.Config{
		Dial: amqp.DefaultDial(dialTimeout(ctx)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	c.Logger.Info("RabbitMQ connected successfully")
	return conn, nil
}
