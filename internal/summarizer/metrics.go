package summarizer

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records model call latency and outcomes.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the summarizer collectors on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "summarizer_calls_total",
				Help: "Total number of summarization model calls.",
			},
			[]string{"backend", "endpoint", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "summarizer_call_duration_seconds",
				Help:    "Duration of summarization model calls.",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 80, 160},
			},
			[]string{"backend", "endpoint"},
		),
	}
	for _, c := range []prometheus.Collector{m.calls, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Wrap returns a Client that records every call made through next.
func (m *Metrics) Wrap(next Client) Client {
	return &instrumented{next: next, metrics: m}
}

type instrumented struct {
	next    Client
	metrics *Metrics
}

func (i *instrumented) Name() string { return i.next.Name() }

func (i *instrumented) Summarize(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	res, err := i.next.Summarize(ctx, req)

	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	endpoint := string(req.Endpoint)
	i.metrics.duration.WithLabelValues(i.next.Name(), endpoint).Observe(time.Since(start).Seconds())
	i.metrics.calls.WithLabelValues(i.next.Name(), endpoint, outcome).Inc()
	return res, err
}
