package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"mqbroker/internal/config"
	"mqbroker/internal/constants"
	"mqbroker/internal/logger"
	"mqbroker/pkg/models"
	"mqbroker/pkg/retry"
	"mqbroker/pkg/tracing"
)

const eventTypeHeader = "event_type"

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer kafkaWriter
	topic  string
	logger logger.Logger
}

func NewKafkaPublisher(cfg config.KafkaConfig, log logger.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           constants.KafkaBatchTimeout,
		WriteTimeout:           constants.KafkaWriteTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w, cfg.Topic, log)
}

func newKafkaPublisher(w kafkaWriter, topic string, log logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic, logger: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event models.BrokerEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return retry.Fatal(fmt.Errorf("failed to marshal event: %w", err))
	}

	headers := []kafka.Header{{Key: eventTypeHeader, Value: []byte(event.Type)}}
	headers = tracing.InjectKafkaHeaders(ctx, headers)

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(event.RoutingKey()),
		Value:   body,
		Headers: headers,
		Time:    event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to write kafka message to %s: %w", p.topic, err)
	}

	return nil
}

func (p *KafkaPublisher) Name() string { return constants.EventsTypeKafka }

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
