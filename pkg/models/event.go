package models

import (
	"time"

	"github.com/google/uuid"
)

// BrokerEvent announces a change to the queue. It carries message metadata
// only, never the message body.
type BrokerEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"event_type"` // "message.accepted", "message.consumed"
	MessageID   string    `json:"message_id"`
	Fingerprint string    `json:"fingerprint"`
	Title       string    `json:"title,omitempty"`
	QueueSize   int       `json:"queue_size"`
	OccurredAt  time.Time `json:"occurred_at"`
	TraceID     string    `json:"trace_id,omitempty"`
}

const (
	EventTypeMessageAccepted = "message.accepted"
	EventTypeMessageConsumed = "message.consumed"
)

func NewBrokerEvent(eventType, messageID, fingerprint, title string, queueSize int) BrokerEvent {
	return BrokerEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		MessageID:   messageID,
		Fingerprint: fingerprint,
		Title:       title,
		QueueSize:   queueSize,
		OccurredAt:  time.Now().UTC(),
	}
}

// RoutingKey is the key used to partition or route the event: the
// fingerprint keeps every event of one message on the same partition.
func (e BrokerEvent) RoutingKey() string {
	return e.Type + "." + e.Fingerprint
}
