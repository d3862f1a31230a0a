package broker

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"mqbroker/internal/events"
	"mqbroker/internal/filter"
	"mqbroker/internal/logger"
	"mqbroker/internal/message"
	"mqbroker/internal/queue"
	"mqbroker/pkg/logging"
	"mqbroker/pkg/metrics"
	"mqbroker/pkg/models"
	"mqbroker/pkg/tracing"
)

// ErrNoMatch reports a query that matched no queued record.
var ErrNoMatch = errors.New("no message matches the filter")

const (
	opSend    = "send"
	opConsume = "consume"
	opFind    = "find"

	statusOK    = "ok"
	statusError = "error"
)

// Service is the broker facade: it owns the queue and runs the submit,
// consume and query operations against it.
type Service struct {
	store    *queue.Store
	engine   *filter.Engine
	notifier *events.Notifier
	logger   logger.Logger
}

func NewService(store *queue.Store, engine *filter.Engine, notifier *events.Notifier, log logger.Logger) *Service {
	return &Service{
		store:    store,
		engine:   engine,
		notifier: notifier,
		logger:   log,
	}
}

// Send validates raw as a message document and appends it to the queue.
func (s *Service) Send(ctx context.Context, raw []byte) (entry queue.Entry, err error) {
	ctx, span := tracing.StartSpan(ctx, "broker.send", attribute.Int("message.size", len(raw)))
	defer s.finish(span, opSend, time.Now(), &err)

	rec, err := message.Decode(raw)
	if err != nil {
		s.logger.InfowCtx(ctx, "Rejected message", "reason", err)
		return queue.Entry{}, err
	}

	entry, err = s.store.Insert(rec)
	if err != nil {
		s.logger.InfowCtx(logging.WithMessageID(ctx, entry.ID), "Rejected duplicate message",
			"fingerprint", entry.Fingerprint,
		)
		return queue.Entry{}, err
	}

	ctx = logging.WithMessageID(ctx, entry.ID)
	span.SetAttributes(attribute.String("message.id", entry.ID))
	s.logger.InfowCtx(ctx, "Message queued",
		"fingerprint", entry.Fingerprint,
		"title", rec.Title,
	)

	s.notify(ctx, models.EventTypeMessageAccepted, entry)
	return entry, nil
}

// Consume removes the oldest message.
func (s *Service) Consume(ctx context.Context) (entry queue.Entry, err error) {
	ctx, span := tracing.StartSpan(ctx, "broker.consume")
	defer s.finish(span, opConsume, time.Now(), &err)

	entry, err = s.store.RemoveFront()
	if err != nil {
		return queue.Entry{}, err
	}

	ctx = logging.WithMessageID(ctx, entry.ID)
	span.SetAttributes(attribute.String("message.id", entry.ID))
	metrics.ObserveQueueWait(time.Since(entry.EnqueuedAt))
	s.logger.InfowCtx(ctx, "Message consumed", "fingerprint", entry.Fingerprint)

	s.notify(ctx, models.EventTypeMessageConsumed, entry)
	return entry, nil
}

// Find returns the queued records matching the filter document raw, in
// arrival order. An empty queue is reported before the filter is examined.
func (s *Service) Find(ctx context.Context, raw []byte) (records []message.Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "broker.find")
	defer s.finish(span, opFind, time.Now(), &err)

	// One snapshot serves both the empty guard and the scan, so a concurrent
	// consume cannot turn an empty queue into a no-match.
	snapshot := s.store.Snapshot()
	if len(snapshot) == 0 {
		return nil, queue.ErrEmpty
	}

	f, err := filter.Parse(raw)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.StringSlice("filter.keys", f.Present()))

	matched, err := s.engine.Apply(ctx, f, queue.Records(snapshot))
	if err != nil {
		return nil, err
	}

	metrics.ObserveFilterMatches(len(matched))
	if len(matched) == 0 {
		return nil, ErrNoMatch
	}

	s.logger.DebugwCtx(ctx, "Filter matched", "keys", f.Present(), "matches", len(matched))
	return matched, nil
}

func (s *Service) QueueSize() int {
	return s.store.Len()
}

func (s *Service) notify(ctx context.Context, eventType string, entry queue.Entry) {
	if s.notifier == nil {
		return
	}
	event := models.NewBrokerEvent(eventType, entry.ID, entry.Fingerprint, entry.Record.Title, s.store.Len())
	// delivery failures are logged by the notifier and never reach the client
	_ = s.notifier.Notify(ctx, event)
}

func (s *Service) finish(span trace.Span, op string, start time.Time, errp *error) {
	status := statusOK
	if *errp != nil {
		status = statusError
		span.RecordError(*errp)
		span.SetStatus(codes.Error, (*errp).Error())
	}
	metrics.IncBrokerRequest(op, status)
	metrics.ObserveBrokerOperation(op, time.Since(start))
	span.End()
}
