package kafka_middleware

import (
	"context"
	"shiftboard/pkg/kafka"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ProducerMetrics struct {
	published *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

func NewProducerMetrics(reg prometheus.Registerer) *ProducerMetrics {
	factory := promauto.With(reg)
	return &ProducerMetrics{
		published: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shiftboard_events_published_total",
				Help: "Events handed to Kafka, by event type and outcome",
			},
			[]string{"event_type", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shiftboard_event_publish_duration_seconds",
				Help:    "Time spent publishing one event",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"event_type"},
		),
	}
}

func (m *ProducerMetrics) Middleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)

		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		m.published.WithLabelValues(msg.EventType(), outcome).Inc()
		m.duration.WithLabelValues(msg.EventType()).Observe(time.Since(start).Seconds())
		return err
	}
}
