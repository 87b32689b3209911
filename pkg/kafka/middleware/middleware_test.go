package kafka_middleware

import (
	"bytes"
	"context"
	"errors"
	"shiftboard/pkg/kafka"
	"shiftboard/pkg/logger"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testMessage(t *testing.T) kafka.Message {
	t.Helper()
	msg, err := kafka.NewMessage().
		WithKey("d1").
		WithValue(map[string]string{"date": "2026-02-14"}).
		WithEventType("availability.changed").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	msg.Topic = "shiftboard.events"
	return msg
}

func TestLoggingProducerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Output: &buf, Level: logger.DEBUG})
	mw := LoggingProducerMiddleware(log)

	err := mw(context.Background(), testMessage(t), func(ctx context.Context, msg kafka.Message) error {
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "Published message") {
		t.Errorf("expected success log, got %s", buf.String())
	}

	buf.Reset()
	wantErr := errors.New("broker down")
	err = mw(context.Background(), testMessage(t), func(ctx context.Context, msg kafka.Message) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if !strings.Contains(buf.String(), "Failed to publish message") {
		t.Errorf("expected failure log, got %s", buf.String())
	}
}

func TestProducerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewProducerMetrics(reg)
	mw := metrics.Middleware()

	ok := func(ctx context.Context, msg kafka.Message) error { return nil }
	fail := func(ctx context.Context, msg kafka.Message) error { return errors.New("nope") }

	_ = mw(context.Background(), testMessage(t), ok)
	_ = mw(context.Background(), testMessage(t), ok)
	_ = mw(context.Background(), testMessage(t), fail)

	if got := testutil.ToFloat64(metrics.published.WithLabelValues("availability.changed", "success")); got != 2 {
		t.Errorf("success count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.published.WithLabelValues("availability.changed", "failure")); got != 1 {
		t.Errorf("failure count = %v, want 1", got)
	}
}
