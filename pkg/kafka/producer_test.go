package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	kafka_config "shiftboard/pkg/kafka/config"
	"shiftboard/pkg/logger"

	"github.com/segmentio/kafka-go"
)

type mockWriter struct {
	written []kafka.Message
	err     error
	closed  bool
}

func (m *mockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.written = append(m.written, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func headerValue(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func buildMessage(t *testing.T) Message {
	t.Helper()
	msg, err := NewMessage().
		WithKey("2026-02-01").
		WithValue(map[string]bool{"is_locked": true}).
		WithEventType("month_lock.changed").
		WithCorrelationID("req-1").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return msg
}

func TestNewProducer_Validation(t *testing.T) {
	log := logger.Discard()

	if _, err := NewProducer(nil, "t", log); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := NewProducer(&kafka_config.Config{}, "t", log); err == nil {
		t.Error("expected error for missing brokers")
	}
	if _, err := NewProducer(&kafka_config.Config{Brokers: []string{"localhost:9092"}}, "", log); err == nil {
		t.Error("expected error for empty topic")
	}
}

func TestPublish_WritesMessage(t *testing.T) {
	w := &mockWriter{}
	p := NewProducerWithWriter(w, nil, "shiftboard.events", time.Second)

	if err := p.Publish(context.Background(), buildMessage(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.written) != 1 {
		t.Fatalf("expected 1 message written, got %d", len(w.written))
	}
	got := w.written[0]
	if string(got.Key) != "2026-02-01" {
		t.Errorf("key = %s", got.Key)
	}
	if headerValue(got, HeaderEventType) != "month_lock.changed" {
		t.Errorf("event type header missing")
	}
	if headerValue(got, HeaderCorrelationID) != "req-1" {
		t.Errorf("correlation header missing")
	}
	if headerValue(got, HeaderEventID) == "" {
		t.Errorf("event id header missing")
	}
}

func TestPublish_RejectsInvalidMessages(t *testing.T) {
	p := NewProducerWithWriter(&mockWriter{}, nil, "topic", 0)

	if err := p.Publish(context.Background(), Message{Value: []byte("x")}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "k"}); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("expected ErrEmptyValue, got %v", err)
	}
}

func TestPublish_MiddlewareOrder(t *testing.T) {
	p := NewProducerWithWriter(&mockWriter{}, nil, "topic", 0)

	var order []string
	for _, name := range []string{"outer", "inner"} {
		name := name
		p.Use(func(ctx context.Context, msg Message, next func(ctx context.Context, msg Message) error) error {
			order = append(order, name)
			return next(ctx, msg)
		})
	}

	if err := p.Publish(context.Background(), buildMessage(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("unexpected middleware order: %v", order)
	}
}

func TestPublish_FailureGoesToDLQ(t *testing.T) {
	writeErr := errors.New("leader not available")
	w := &mockWriter{err: writeErr}
	dlq := &mockWriter{}
	p := NewProducerWithWriter(w, dlq, "shiftboard.events", 0)

	err := p.Publish(context.Background(), buildMessage(t))
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected original error, got %v", err)
	}
	if len(dlq.written) != 1 {
		t.Fatalf("expected DLQ write, got %d", len(dlq.written))
	}
	if headerValue(dlq.written[0], HeaderOriginalTopic) != "shiftboard.events" {
		t.Errorf("original topic header missing")
	}
	if headerValue(dlq.written[0], HeaderDLQError) != writeErr.Error() {
		t.Errorf("dlq error header missing")
	}
}

func TestPublish_AfterClose(t *testing.T) {
	w := &mockWriter{}
	p := NewProducerWithWriter(w, nil, "topic", 0)

	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !w.closed {
		t.Error("expected writer to be closed")
	}
	if err := p.Publish(context.Background(), buildMessage(t)); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("expected ErrProducerClosed, got %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second close should be a no-op, got %v", err)
	}
}

func TestMessageBuilder_EncodeError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	if !errors.Is(err, ErrEncodeValue) {
		t.Errorf("expected ErrEncodeValue, got %v", err)
	}
}
