package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"mqbroker/internal/constants"
)

// LoadConfig reads configFile when given, layers environment variables on
// top and validates the result. An empty configFile runs on defaults.
func LoadConfig(configFile string) (*Config, error) {
	viper.Reset()

	viper.SetConfigType("yaml")
	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	bindEnvVariables()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := ValidateStatic(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", constants.DefaultHost)
	viper.SetDefault("server.port", constants.DefaultPort)
	viper.SetDefault("server.read_timeout_seconds", 10)
	viper.SetDefault("server.write_timeout_seconds", 10)
	viper.SetDefault("server.enable_swagger", true)
	viper.SetDefault("server.rate_limit.enabled", false)
	viper.SetDefault("server.rate_limit.rps", 10.0)
	viper.SetDefault("server.rate_limit.burst", 20)
	viper.SetDefault("server.rate_limit.cleanup_interval", 300)
	viper.SetDefault("server.rate_limit.max_age", 600)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetDefault("queue.fingerprint_algorithm", "sha256")

	viper.SetDefault("events.type", constants.EventsTypeNone)
	viper.SetDefault("events.publish_timeout_seconds", 2)
	viper.SetDefault("events.kafka.topic", constants.DefaultEventsTopic)
	viper.SetDefault("events.redis.port", 6379)
	viper.SetDefault("events.redis.channel", constants.DefaultEventsTopic)
	viper.SetDefault("events.rabbitmq.exchange", constants.DefaultEventsTopic)
	viper.SetDefault("events.retry.max_attempts", 3)
	viper.SetDefault("events.retry.initial_interval_ms", 100)
	viper.SetDefault("events.retry.max_interval_ms", 1000)
	viper.SetDefault("events.retry.multiplier", 2.0)

	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.max_requests", 3)
	viper.SetDefault("circuit_breaker.interval_seconds", 60)
	viper.SetDefault("circuit_breaker.timeout_seconds", 30)

	viper.SetDefault("tracing.service_name", constants.ServiceName)
	viper.SetDefault("tracing.sampler.type", "always_on")
}

func bindEnvVariables() {
	viper.BindEnv("server.host", "SERVER_HOST")
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.read_timeout_seconds", "SERVER_READ_TIMEOUT_SECONDS")
	viper.BindEnv("server.write_timeout_seconds", "SERVER_WRITE_TIMEOUT_SECONDS")

	viper.BindEnv("logging.level", "LOGGING_LEVEL")
	viper.BindEnv("logging.format", "LOGGING_FORMAT")

	viper.BindEnv("queue.fingerprint_algorithm", "QUEUE_FINGERPRINT_ALGORITHM")

	viper.BindEnv("events.type", "EVENTS_TYPE")
	viper.BindEnv("events.kafka.brokers", "EVENTS_KAFKA_BROKERS")
	viper.BindEnv("events.kafka.topic", "EVENTS_KAFKA_TOPIC")
	viper.BindEnv("events.redis.host", "EVENTS_REDIS_HOST")
	viper.BindEnv("events.redis.port", "EVENTS_REDIS_PORT")
	viper.BindEnv("events.redis.password", "EVENTS_REDIS_PASSWORD")
	viper.BindEnv("events.redis.db", "EVENTS_REDIS_DB")
	viper.BindEnv("events.redis.channel", "EVENTS_REDIS_CHANNEL")
	viper.BindEnv("events.rabbitmq.url", "EVENTS_RABBITMQ_URL")
	viper.BindEnv("events.rabbitmq.exchange", "EVENTS_RABBITMQ_EXCHANGE")

	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.service_name", "TRACING_SERVICE_NAME")
	viper.BindEnv("tracing.otlp.endpoint", "TRACING_OTLP_ENDPOINT")
	viper.BindEnv("tracing.otlp.insecure", "TRACING_OTLP_INSECURE")
}

func applyEnvOverrides(cfg *Config) {
	if brokersEnv := viper.GetString("EVENTS_KAFKA_BROKERS"); brokersEnv != "" {
		brokers := strings.Split(brokersEnv, ",")
		for i := range brokers {
			brokers[i] = strings.TrimSpace(brokers[i])
		}
		if len(brokers) > 0 && brokers[0] != "" {
			cfg.Events.Kafka.Brokers = brokers
		}
	}
}
