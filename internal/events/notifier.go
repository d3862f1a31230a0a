package events

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"mqbroker/internal/config"
	"mqbroker/internal/logger"
	"mqbroker/pkg/circuitbreaker"
	"mqbroker/pkg/metrics"
	"mqbroker/pkg/models"
	"mqbroker/pkg/retry"
	"mqbroker/pkg/tracing"
)

const (
	statusSuccess  = "success"
	statusFailed   = "failed"
	statusRejected = "rejected"
	statusInvalid  = "invalid"
)

// Notifier delivers events through a Publisher with a per-event timeout,
// retries and an optional circuit breaker. Delivery failures are logged and
// counted; they are returned only so callers and tests can observe them.
type Notifier struct {
	publisher Publisher
	breaker   *circuitbreaker.Wrapper
	policy    retry.Policy
	timeout   time.Duration
	logger    logger.Logger
}

func NewNotifier(pub Publisher, cfg config.EventsConfig, cbCfg config.CircuitBreakerConfig, log logger.Logger) *Notifier {
	if pub == nil {
		pub = NewNopPublisher()
	}

	n := &Notifier{
		publisher: pub,
		policy:    retry.PolicyFromConfig(cfg.Retry),
		timeout:   cfg.PublishTimeout(),
		logger:    log,
	}
	if n.timeout <= 0 {
		n.timeout = 2 * time.Second
	}

	if cbCfg.Enabled {
		bcfg := circuitbreaker.FromConfig("events-"+pub.Name(), cbCfg)
		bcfg.OnStateChange = func(name string, from, to gobreaker.State) {
			log.Warnw("Event publisher circuit breaker changed state",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		}
		n.breaker = circuitbreaker.NewWrapper(bcfg)
	}

	return n
}

func (n *Notifier) Publisher() Publisher {
	return n.publisher
}

// Notify publishes event. The request context only contributes values such as
// the trace; cancellation of the request does not abort delivery.
func (n *Notifier) Notify(ctx context.Context, event models.BrokerEvent) error {
	name := n.publisher.Name()

	if event.TraceID == "" {
		event.TraceID = tracing.TraceID(ctx)
	}
	if err := models.ValidateBrokerEvent(event); err != nil {
		metrics.IncEventPublished(name, event.Type, statusInvalid)
		n.logger.ErrorwCtx(ctx, "Refusing to publish invalid event",
			"error", err,
			"event_type", event.Type,
		)
		return err
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	err := retry.RetryWithCallback(pubCtx, n.policy, func() error {
		return n.publishOnce(pubCtx, event)
	}, func(attempt int, err error, nextDelay time.Duration) {
		metrics.IncRetryAttempt(name)
		n.logger.WarnwCtx(ctx, "Retrying event publish",
			"attempt", attempt,
			"max_attempts", n.policy.MaxAttempts,
			"next_delay", nextDelay,
			"error", err,
			"publisher", name,
		)
	})

	if err != nil {
		status := statusFailed
		if circuitbreaker.IsRejection(err) {
			status = statusRejected
		}
		metrics.IncEventPublished(name, event.Type, status)
		n.logger.ErrorwCtx(ctx, "Failed to publish event",
			"error", err,
			"publisher", name,
			"event_type", event.Type,
			"event_id", event.ID,
		)
		return err
	}

	metrics.IncEventPublished(name, event.Type, statusSuccess)
	n.logger.DebugwCtx(ctx, "Event published",
		"publisher", name,
		"event_type", event.Type,
		"event_id", event.ID,
	)
	return nil
}

func (n *Notifier) publishOnce(ctx context.Context, event models.BrokerEvent) error {
	if n.breaker == nil {
		return n.publisher.Publish(ctx, event)
	}

	err := n.breaker.Execute(ctx, func(ctx context.Context) error {
		return n.publisher.Publish(ctx, event)
	})
	if circuitbreaker.IsRejection(err) {
		return retry.Fatal(err)
	}
	return err
}

func (n *Notifier) Close() error {
	return n.publisher.Close()
}

// Breaker returns the circuit breaker guarding the publisher, or nil when
// circuit_breaker.enabled is false.
func (n *Notifier) Breaker() *circuitbreaker.Wrapper {
	return n.breaker
}
