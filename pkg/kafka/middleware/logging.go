package kafka_middleware

import (
	"context"
	"shiftboard/pkg/kafka"
	"shiftboard/pkg/logger"
	"time"
)

func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		attrs := []any{
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.EventID(),
			"event_type", msg.EventType(),
			"correlation_id", msg.CorrelationID(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if err != nil {
			log.Error("Failed to publish message", append(attrs, "error", err)...)
		} else {
			log.Debug("Published message", attrs...)
		}

		return err
	}
}
