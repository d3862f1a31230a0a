package events

import (
	"context"

	"mqbroker/pkg/models"
)

// Publisher delivers broker events to an external sink.
type Publisher interface {
	Publish(ctx context.Context, event models.BrokerEvent) error
	Name() string
	Close() error
}

// NopPublisher drops every event. It is used when events.type is "none".
type NopPublisher struct{}

func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

func (NopPublisher) Publish(context.Context, models.BrokerEvent) error { return nil }

func (NopPublisher) Name() string { return "none" }

func (NopPublisher) Close() error { return nil }
