package models

import "fmt"

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// ValidateBrokerEvent checks the fields every consumer relies on.
func ValidateBrokerEvent(e BrokerEvent) error {
	if e.ID == "" {
		return &ValidationError{Field: "id", Message: "event ID is required"}
	}

	switch e.Type {
	case EventTypeMessageAccepted, EventTypeMessageConsumed:
	default:
		return &ValidationError{Field: "event_type", Message: fmt.Sprintf("unknown event type %q", e.Type)}
	}

	if e.MessageID == "" {
		return &ValidationError{Field: "message_id", Message: "message ID is required"}
	}

	if e.OccurredAt.IsZero() {
		return &ValidationError{Field: "occurred_at", Message: "occurrence time is required"}
	}

	return nil
}
