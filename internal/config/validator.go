package config

import (
	"errors"
	"fmt"
	"strings"

	"mqbroker/internal/constants"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

func ValidateStatic(cfg *Config) error {
	var errs []error

	if err := validateServer(cfg.Server); err != nil {
		errs = append(errs, err)
	}

	if err := validateLogging(cfg.Logging); err != nil {
		errs = append(errs, err)
	}

	if err := validateQueue(cfg.Queue); err != nil {
		errs = append(errs, err)
	}

	if err := validateEvents(cfg.Events); err != nil {
		errs = append(errs, err)
	}

	if err := validateCircuitBreaker(cfg.CircuitBreaker); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateServer(cfg ServerConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return &ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port),
		}
	}

	if cfg.ReadTimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "server.read_timeout_seconds",
			Message: "read timeout must be positive",
		}
	}

	if cfg.WriteTimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "server.write_timeout_seconds",
			Message: "write timeout must be positive",
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.RPS <= 0 {
			return &ValidationError{
				Field:   "server.rate_limit.rps",
				Message: "rps must be positive when rate limiting is enabled",
			}
		}
		if cfg.RateLimit.Burst < 1 {
			return &ValidationError{
				Field:   "server.rate_limit.burst",
				Message: "burst must be at least 1",
			}
		}
	}

	return nil
}

func validateLogging(cfg LoggingConfig) error {
	validFormats := map[string]bool{"": true, "json": true, "console": true}
	if !validFormats[strings.ToLower(cfg.Format)] {
		return &ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid log format: %s (valid: json, console)", cfg.Format),
		}
	}
	return nil
}

func validateQueue(cfg QueueConfig) error {
	validAlgorithms := map[string]bool{
		"md5": true, "sha256": true, "sha1": true,
	}
	if cfg.FingerprintAlgorithm != "" && !validAlgorithms[strings.ToLower(cfg.FingerprintAlgorithm)] {
		return &ValidationError{
			Field:   "queue.fingerprint_algorithm",
			Message: fmt.Sprintf("invalid fingerprint algorithm: %s (valid: md5, sha256, sha1)", cfg.FingerprintAlgorithm),
		}
	}
	return nil
}

func validateEvents(cfg EventsConfig) error {
	switch cfg.Type {
	case "", constants.EventsTypeNone:
		return nil
	case constants.EventsTypeKafka:
		if err := validateKafka(cfg.Kafka); err != nil {
			return err
		}
	case constants.EventsTypeRedis:
		if err := validateRedis(cfg.Redis); err != nil {
			return err
		}
	case constants.EventsTypeRabbitMQ:
		if err := validateRabbitMQ(cfg.RabbitMQ); err != nil {
			return err
		}
	default:
		return &ValidationError{
			Field:   "events.type",
			Message: fmt.Sprintf("unknown events type: %s (supported: none, kafka, redis, rabbitmq)", cfg.Type),
		}
	}

	if cfg.PublishTimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "events.publish_timeout_seconds",
			Message: "publish timeout must be positive",
		}
	}

	return validateRetry(cfg.Retry)
}

func validateKafka(cfg KafkaConfig) error {
	if len(cfg.Brokers) == 0 {
		return &ValidationError{
			Field:   "events.kafka.brokers",
			Message: "at least one Kafka broker is required",
		}
	}

	for i, broker := range cfg.Brokers {
		if broker == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("events.kafka.brokers[%d]", i),
				Message: "broker address cannot be empty",
			}
		}
	}

	if cfg.Topic == "" {
		return &ValidationError{
			Field:   "events.kafka.topic",
			Message: "Kafka topic is required",
		}
	}

	return nil
}

func validateRedis(cfg RedisConfig) error {
	if cfg.Host == "" {
		return &ValidationError{
			Field:   "events.redis.host",
			Message: "Redis host is required",
		}
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return &ValidationError{
			Field:   "events.redis.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port),
		}
	}

	if cfg.Channel == "" {
		return &ValidationError{
			Field:   "events.redis.channel",
			Message: "Redis channel is required",
		}
	}

	return nil
}

func validateRabbitMQ(cfg RabbitMQConfig) error {
	if !strings.HasPrefix(cfg.URL, "amqp://") && !strings.HasPrefix(cfg.URL, "amqps://") {
		return &ValidationError{
			Field:   "events.rabbitmq.url",
			Message: "RabbitMQ URL must start with amqp:// or amqps://",
		}
	}

	if cfg.Exchange == "" {
		return &ValidationError{
			Field:   "events.rabbitmq.exchange",
			Message: "RabbitMQ exchange is required",
		}
	}

	return nil
}

func validateRetry(cfg RetryConfig) error {
	if cfg.MaxAttempts < 0 {
		return &ValidationError{
			Field:   "events.retry.max_attempts",
			Message: "max_attempts must be non-negative",
		}
	}

	if cfg.InitialIntervalMs < 0 || cfg.MaxIntervalMs < 0 {
		return &ValidationError{
			Field:   "events.retry",
			Message: "intervals must be non-negative",
		}
	}

	if cfg.MaxIntervalMs > 0 && cfg.InitialIntervalMs > 0 && cfg.MaxIntervalMs < cfg.InitialIntervalMs {
		return &ValidationError{
			Field:   "events.retry.max_interval_ms",
			Message: "max_interval_ms must be greater than or equal to initial_interval_ms",
		}
	}

	if cfg.Multiplier <= 0 {
		return &ValidationError{
			Field:   "events.retry.multiplier",
			Message: "multiplier must be positive",
		}
	}

	return nil
}

func validateCircuitBreaker(cfg CircuitBreakerConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.FailureRatio < 0 || cfg.FailureRatio > 1 {
		return &ValidationError{
			Field:   "circuit_breaker.failure_ratio",
			Message: fmt.Sprintf("failure ratio must be between 0 and 1, got %v", cfg.FailureRatio),
		}
	}

	return nil
}
