package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eugenenazirov/knapsack/internal/solver"
)

const (
	outcomeOK       = "ok"
	outcomeInvalid  = "invalid_input"
	outcomeTooLarge = "too_large"
	outcomeError    = "error"
)

// metrics owns a private registry so multiple handlers (and tests) never
// collide on registration.
type metrics struct {
	registry *prometheus.Registry
	solves   *prometheus.CounterVec
	duration prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "knapsack",
			Name:      "solves_total",
			Help:      "Number of solve requests by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "knapsack",
			Name:      "solve_duration_seconds",
			Help:      "Time spent filling the DP table.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}
	m.registry.MustRegister(m.solves, m.duration)
	return m
}

func (m *metrics) observe(err error, elapsed time.Duration) {
	outcome := outcomeOK
	switch {
	case err == nil:
		m.duration.Observe(elapsed.Seconds())
	case errors.Is(err, solver.ErrInvalidInput):
		outcome = outcomeInvalid
	case errors.Is(err, solver.ErrProblemTooLarge):
		outcome = outcomeTooLarge
	default:
		outcome = outcomeError
	}
	m.solves.WithLabelValues(outcome).Inc()
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
