package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	factory := promauto.With(reg)
	return &HTTPMetrics{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shiftboard_http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shiftboard_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Middleware records request counts and latency. Routes are labelled by
// their httprouter pattern so ids and dates do not blow up cardinality.
func (m *HTTPMetrics) Middleware(router *httprouter.Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			route := routePattern(router, r)
			m.requests.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.statusCode)).Inc()
			m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}

func routePattern(router *httprouter.Router, r *http.Request) string {
	if router == nil {
		return "unmatched"
	}
	handle, params, _ := router.Lookup(r.Method, r.URL.Path)
	if handle == nil {
		return "unmatched"
	}
	segments := strings.Split(r.URL.Path, "/")
	for _, p := range params {
		for i, s := range segments {
			if s != "" && s == p.Value {
				segments[i] = ":" + p.Key
				break
			}
		}
	}
	return strings.Join(segments, "/")
}
