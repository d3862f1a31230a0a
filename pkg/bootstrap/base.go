package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mqbroker/internal/config"
	"mqbroker/internal/constants"
	"mqbroker/internal/events"
	"mqbroker/internal/logger"
	"mqbroker/pkg/health"
)

const defaultDialTimeout = 10 * time.Second

// Base holds the process-wide collaborators shared by the server: config,
// logger and the event publisher with its health checker.
type Base struct {
	Config    *config.Config
	Logger    logger.Logger
	Publisher events.Publisher
	Checkers  []health.Checker
}

func NewBase(cfg *config.Config, log logger.Logger) *Base {
	return &Base{
		Config: cfg,
		Logger: log,
	}
}

// InitEvents connects the configured event backend and creates its
// publisher. With events.type "none" no connection is made.
func (b *Base) InitEvents(ctx context.Context) error {
	cfg := b.Config.Events
	connector := NewConnector(b.Config, b.Logger)

	switch cfg.Type {
	case constants.EventsTypeNone, "":
		b.Publisher = events.NewNopPublisher()
	case constants.EventsTypeKafka:
		b.Publisher = events.NewKafkaPublisher(cfg.Kafka, b.Logger)
		b.Checkers = append(b.Checkers, health.NewKafkaChecker(cfg.Kafka.Brokers))
	case constants.EventsTypeRedis:
		client, err := connector.InitRedis(ctx)
		if err != nil {
			return err
		}
		b.Publisher = events.NewRedisPublisher(client, cfg.Redis.Channel)
		b.Checkers = append(b.Checkers, health.NewRedisChecker(client))
	case constants.EventsTypeRabbitMQ:
		conn, err := connector.InitRabbitMQ(ctx)
		if err != nil {
			return err
		}
		pub, err := events.NewRabbitMQPublisher(conn, cfg.RabbitMQ.Exchange)
		if err != nil {
			conn.Close()
			return err
		}
		b.Publisher = pub
		b.Checkers = append(b.Checkers, health.NewRabbitMQChecker(conn))
	default:
		return fmt.Errorf("unknown events type: %s", cfg.Type)
	}

	b.Logger.Infow("Event publisher initialized", "publisher", b.Publisher.Name())
	return nil
}

func (b *Base) ShutdownEvents() []error {
	var errs []error

	if b.Publisher != nil {
		if err := b.Publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher close error: %w", err))
		}
	}

	return errs
}

func (b *Base) Shutdown(ctx context.Context, additionalShutdown func(ctx context.Context) []error) error {
	b.Logger.Info("Shutting down application...")

	var errs []error

	if additionalShutdown != nil {
		errs = append(errs, additionalShutdown(ctx)...)
	}

	errs = append(errs, b.ShutdownEvents()...)

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}

	b.Logger.Info("Application exited successfully")
	return nil
}

func dialTimeout(ctx context.Context) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d > 0 {
			return d
		}
	}
	return defaultDialTimeout
}
