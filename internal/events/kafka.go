package events

import (
	"context"
	"shiftboard/pkg/kafka"
	"shiftboard/pkg/middleware"
	"time"
)

// KafkaPublisher writes events to a single topic. Availability events are
// keyed by doctor so one doctor's changes stay ordered; lock events by
// month.
type KafkaPublisher struct {
	producer *kafka.Producer
	source   string
}

func NewKafkaPublisher(producer *kafka.Producer, source string) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		source:   source,
	}
}

func (p *KafkaPublisher) AvailabilityChanged(ctx context.Context, e AvailabilityChanged) error {
	return p.publish(ctx, TypeAvailabilityChanged, e.DoctorID, e.At, e)
}

func (p *KafkaPublisher) MonthLockChanged(ctx context.Context, e MonthLockChanged) error {
	return p.publish(ctx, TypeMonthLockChanged, e.MonthStart, e.At, e)
}

// publish stamps the message with the time of the change, not the time of
// the send.
func (p *KafkaPublisher) publish(ctx context.Context, eventType, key string, at time.Time, payload any) error {
	builder := kafka.NewMessage()
	if !at.IsZero() {
		builder.WithTimestamp(at)
	}
	msg, err := builder.
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		Build()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
