package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mqbroker/internal/logger"
	"mqbroker/pkg/models"
)

type fakeKafkaWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeKafkaWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeKafkaWriter{}
	p := newKafkaPublisher(w, "mqbroker.events", logger.NopLogger())
	event := acceptedEvent()

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, event.RoutingKey(), string(msg.Key))

	var decoded models.BrokerEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, event.Type, decoded.Type)

	require.NotEmpty(t, msg.Headers)
	assert.Equal(t, eventTypeHeader, msg.Headers[0].Key)
	assert.Equal(t, models.EventTypeMessageAccepted, string(msg.Headers[0].Value))

	assert.Equal(t, "kafka", p.Name())
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	w := &fakeKafkaWriter{err: errors.New("leader not available")}
	p := newKafkaPublisher(w, "mqbroker.events", logger.NopLogger())

	err := p.Publish(context.Background(), acceptedEvent())
	assert.ErrorContains(t, err, "leader not available")
	assert.ErrorContains(t, err, "mqbroker.events")
}

type publishedAMQP struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeAMQPChannel struct {
	published []publishedAMQP
	closed    bool
}

func (c *fakeAMQPChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	c.published = append(c.published, publishedAMQP{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeAMQPChannel) Close() error {
	c.closed = true
	return nil
}

func TestRabbitMQPublisher_Publish(t *testing.T) {
	ch := &fakeAMQPChannel{}
	p := &RabbitMQPublisher{channel: ch, exchange: "mqbroker.events"}
	event := acceptedEvent()

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, ch.published, 1)

	got := ch.published[0]
	assert.Equal(t, "mqbroker.events", got.exchange)
	assert.Equal(t, event.RoutingKey(), got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, event.ID, got.msg.MessageId)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.NotNil(t, got.msg.Headers)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestNewRabbitMQPublisher_NilConnection(t *testing.T) {
	_, err := NewRabbitMQPublisher(nil, "x")
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	p := NewNopPublisher()
	assert.NoError(t, p.Publish(context.Background(), acceptedEvent()))
	assert.Equal(t, "none", p.Name())
	assert.NoError(t, p.Close())
}
