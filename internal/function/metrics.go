package function

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK            = "ok"
	outcomeFunctionError = "function_error"
	outcomeTransport     = "transport_error"
)

// Instrumented records invocation counts and latency for another Invoker.
type Instrumented struct {
	next     Invoker
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewInstrumented registers the invocation metrics on reg and wraps next.
func NewInstrumented(next Invoker, reg prometheus.Registerer) (*Instrumented, error) {
	m := &Instrumented{
		next: next,
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "function_invocations_total",
				Help: "Total number of remote function invocations by outcome.",
			},
			[]string{"function", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "function_invocation_duration_seconds",
				Help:    "Remote function invocation latency.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"function"},
		),
	}

	if err := reg.Register(m.calls); err != nil {
		return nil, err
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Instrumented) Invoke(ctx context.Context, name string, payload []byte) (*Result, error) {
	start := time.Now()
	res, err := m.next.Invoke(ctx, name, payload)
	m.duration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	outcome := outcomeOK
	switch {
	case err != nil:
		outcome = outcomeTransport
	case res.FunctionError != "":
		outcome = outcomeFunctionError
	}
	m.calls.WithLabelValues(name, outcome).Inc()

	return res, err
}
