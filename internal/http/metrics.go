package http

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type requestMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// newRequestMetrics registers the request collectors on registerer. The
// returned metrics are usable even when registration failed, they are just
// not exported.
func newRequestMetrics(registerer prometheus.Registerer) (*requestMetrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gitlab_client",
		Name:      "requests_total",
		Help:      "Number of GitLab API requests by method and status code.",
	}, []string{"method", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gitlab_client",
		Name:      "request_duration_seconds",
		Help:      "Latency of GitLab API requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	requests, requestsErr := register(registerer, requests)
	duration, durationErr := register(registerer, duration)

	return &requestMetrics{
		requests: requests,
		duration: duration,
	}, errors.Join(requestsErr, durationErr)
}

// register returns the already registered collector when one with the same
// descriptor exists, so several clients can share a registry.
func register[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}

	alreadyRegistered := prometheus.AlreadyRegisteredError{}
	if errors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	return collector, fmt.Errorf("registering metrics: %w", err)
}

func (m *requestMetrics) observe(method string, resp *Response, duration time.Duration) {
	if m == nil {
		return
	}

	code := "error"
	if resp != nil {
		code = strconv.Itoa(resp.StatusCode)
	}

	m.requests.WithLabelValues(method, code).Inc()
	m.duration.WithLabelValues(method).Observe(duration.Seconds())
}
