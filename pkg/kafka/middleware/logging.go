package kafka_middleware

import (
	"context"
	"time"

	"reservo/pkg/kafka"
	"reservo/pkg/logger"
)

// LoggingProducerMiddleware logs publish operations with their outcome
func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		duration := time.Since(start)
		if err != nil {
			log.Error("Failed to publish message",
				"event_id", msg.GetEventID(),
				"event_type", msg.GetEventType(),
				"key", msg.Key,
				"duration_ms", duration.Milliseconds(),
				"error", err,
			)
			return err
		}

		log.Debug("Message published",
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"key", msg.Key,
			"duration_ms", duration.Milliseconds(),
		)
		return nil
	}
}
