package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mqbroker/internal/constants"
	"mqbroker/pkg/models"
	"mqbroker/pkg/retry"
)

// RedisPublisher publishes events as JSON on a pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event models.BrokerEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return retry.Fatal(fmt.Errorf("failed to marshal event: %w", err))
	}

	if err := p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("redis PUBLISH to %s failed: %w", p.channel, err)
	}
	return nil
}

func (p *RedisPublisher) Name() string { return constants.EventsTypeRedis }

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
