// Package metrics exports Prometheus metrics for calls made through a
// ghapi.Caller.
package metrics

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fivetwenty-io/ghapi-client/pkg/ghapi"
)

// StatusError labels calls that failed before a status was received.
const StatusError = "error"

// Collector holds the request metrics.
type Collector struct {
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	remaining prometheus.Gauge
}

// New registers the collector's metrics with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Collector{
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "github_requests_total",
				Help:      "Total GitHub API requests by method and status",
			},
			[]string{"method", "status"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "github_request_duration_seconds",
				Help:      "GitHub API request latency until response headers",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		remaining: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "github_ratelimit_remaining",
				Help:      "Requests remaining in the current rate-limit window",
			},
		),
	}
}

// Interceptor returns the response interceptor that records each call.
func (c *Collector) Interceptor() ghapi.ResponseInterceptor {
	return func(_ context.Context, env *ghapi.RequestEnvelope, info *ghapi.ResponseInfo) error {
		status := StatusError
		if info.Err == nil {
			status = strconv.Itoa(info.StatusCode)
		}

		c.requests.WithLabelValues(env.Method, status).Inc()
		c.latency.WithLabelValues(env.Method).Observe(info.Duration.Seconds())

		if snap, ok := ghapi.ParseRateLimit(info.Response); ok {
			c.remaining.Set(float64(snap.Remaining))
		}

		return nil
	}
}
