package constants

import "time"

const (
	ServiceName = "mqbroker"
)

const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 1234
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	EventsTypeNone     = "none"
	EventsTypeKafka    = "kafka"
	EventsTypeRedis    = "redis"
	EventsTypeRabbitMQ = "rabbitmq"
)

const (
	DefaultEventsTopic = "mqbroker.events"
)

const (
	KafkaBatchTimeout = 10 * time.Millisecond
	KafkaWriteTimeout = 10 * time.Second
)

const (
	HealthCheckTimeout = 5 * time.Second
)

const (
	ContentTypeXML = "application/xml"
	XMLDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`
)
