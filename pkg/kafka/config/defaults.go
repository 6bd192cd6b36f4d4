package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false

	DefaultEnableMiddleware = true

	// Topics for booking lifecycle events
	DefaultBookingEventsTopic    = "reservo.bookings.events"
	DefaultBookingEventsDLQTopic = "reservo.bookings.events.dlq"
)
