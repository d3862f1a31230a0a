//go:build integration

package events

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"

	"mqbroker/internal/config"
	"mqbroker/internal/logger"
	"mqbroker/pkg/models"
)

func init() {
	if os.Getenv("TESTCONTAINERS_RYUK_DISABLED") == "" {
		os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")
	}
}

func TestRedisPublisher_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := redismodule.Run(ctx, "redis:8.4.0-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opt, err := redis.ParseURL(uri)
	require.NoError(t, err)

	subscriber := redis.NewClient(opt)
	t.Cleanup(func() {
		subscriber.Close()
	})

	sub := subscriber.Subscribe(ctx, "mqbroker.events")
	t.Cleanup(func() {
		sub.Close()
	})
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	pub := NewRedisPublisher(redis.NewClient(opt), "mqbroker.events")
	t.Cleanup(func() {
		pub.Close()
	})

	event := acceptedEvent()
	require.NoError(t, pub.Publish(ctx, event))

	select {
	case msg := <-sub.Channel():
		var got models.BrokerEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, event.Fingerprint, got.Fingerprint)
	case <-time.After(10 * time.Second):
		t.Fatal("no event received")
	}
}

func TestKafkaPublisher_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0", tckafka.WithClusterID("mqbroker-test"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(container)
	})

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)

	cfg := config.KafkaConfig{Brokers: brokers, Topic: "mqbroker.events"}
	pub := NewKafkaPublisher(cfg, logger.NopLogger())
	t.Cleanup(func() {
		pub.Close()
	})

	n := NewNotifier(pub, config.EventsConfig{
		PublishTimeoutSeconds: 30,
		Retry:                 config.RetryConfig{MaxAttempts: 10, InitialIntervalMs: 500, MaxIntervalMs: 2000, Multiplier: 2},
	}, config.CircuitBreakerConfig{}, logger.NopLogger())

	event := acceptedEvent()
	require.NoError(t, n.Notify(ctx, event))

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   brokers,
		Topic:     cfg.Topic,
		Partition: 0,
		MaxWait:   time.Second,
	})
	t.Cleanup(func() {
		reader.Close()
	})

	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := reader.ReadMessage(readCtx)
	require.NoError(t, err)

	var got models.BrokerEvent
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, event.ID, got.ID)
	assert.Equal(t, event.RoutingKey(), string(msg.Key))
}
