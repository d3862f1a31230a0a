package config

import (
	"time"
)

type Config struct {
	Server         ServerConfig         `mapstructure:"server" yaml:"server"`
	Logging        LoggingConfig        `mapstructure:"logging" yaml:"logging"`
	Queue          QueueConfig          `mapstructure:"queue" yaml:"queue"`
	Events         EventsConfig         `mapstructure:"events" yaml:"events"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker" yaml:"circuit_breaker"`
	Tracing        TracingConfig        `mapstructure:"tracing" yaml:"tracing"`
}

type ServerConfig struct {
	Host                string          `mapstructure:"host" yaml:"host"`
	Port                int             `mapstructure:"port" yaml:"port"`
	ReadTimeoutSeconds  int             `mapstructure:"read_timeout_seconds" yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int             `mapstructure:"write_timeout_seconds" yaml:"write_timeout_seconds"`
	EnableSwagger       bool            `mapstructure:"enable_swagger" yaml:"enable_swagger"`
	RateLimit           RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
}

func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

type RateLimitConfig struct {
	Enabled         bool    `mapstructure:"enabled" yaml:"enabled"`
	RPS             float64 `mapstructure:"rps" yaml:"rps"`
	Burst           int     `mapstructure:"burst" yaml:"burst"`
	CleanupInterval int     `mapstructure:"cleanup_interval" yaml:"cleanup_interval"`
	MaxAge          int     `mapstructure:"max_age" yaml:"max_age"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type QueueConfig struct {
	FingerprintAlgorithm string `mapstructure:"fingerprint_algorithm" yaml:"fingerprint_algorithm"`
}

type EventsConfig struct {
	Type                  string         `mapstructure:"type" yaml:"type"` // "none", "kafka", "redis", "rabbitmq"
	PublishTimeoutSeconds int            `mapstructure:"publish_timeout_seconds" yaml:"publish_timeout_seconds"`
	Kafka                 KafkaConfig    `mapstructure:"kafka" yaml:"kafka"`
	Redis                 RedisConfig    `mapstructure:"redis" yaml:"redis"`
	RabbitMQ              RabbitMQConfig `mapstructure:"rabbitmq" yaml:"rabbitmq"`
	Retry                 RetryConfig    `mapstructure:"retry" yaml:"retry"`
}

func (c EventsConfig) PublishTimeout() time.Duration {
	return time.Duration(c.PublishTimeoutSeconds) * time.Second
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers" yaml:"brokers"`
	Topic   string   `mapstructure:"topic" yaml:"topic"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Password string `mapstructure:"password" yaml:"-"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Channel  string `mapstructure:"channel" yaml:"channel"`
}

type RabbitMQConfig struct {
	URL      string `mapstructure:"url" yaml:"-"`
	Exchange string `mapstructure:"exchange" yaml:"exchange"`
}

type RetryConfig struct {
	MaxAttempts       int     `mapstructure:"max_attempts" yaml:"max_attempts"`
	InitialIntervalMs int     `mapstructure:"initial_interval_ms" yaml:"initial_interval_ms"`
	MaxIntervalMs     int     `mapstructure:"max_interval_ms" yaml:"max_interval_ms"`
	Multiplier        float64 `mapstructure:"multiplier" yaml:"multiplier"`
}

type CircuitBreakerConfig struct {
	Enabled         bool    `mapstructure:"enabled" yaml:"enabled"`
	MaxRequests     uint32  `mapstructure:"max_requests" yaml:"max_requests"`
	IntervalSeconds int     `mapstructure:"interval_seconds" yaml:"interval_seconds"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	FailureRatio    float64 `mapstructure:"failure_ratio" yaml:"failure_ratio"`
	MinRequests     uint32  `mapstructure:"min_requests" yaml:"min_requests"`
}

type TracingConfig struct {
	Enabled     bool          `mapstructure:"enabled" yaml:"enabled"`
	ServiceName string        `mapstructure:"service_name" yaml:"service_name"`
	OTLP        OTLPConfig    `mapstructure:"otlp" yaml:"otlp"`
	Sampler     SamplerConfig `mapstructure:"sampler" yaml:"sampler"`
}

type OTLPConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Insecure bool   `mapstructure:"insecure" yaml:"insecure"`
}

type SamplerConfig struct {
	Type  string  `mapstructure:"type" yaml:"type"`
	Param float64 `mapstructure:"param" yaml:"param"`
}

func Load(configFile string) (*Config, error) {
	return LoadConfig(configFile)
}
