// Package observability implements ports.Observability by pairing a
// zerolog structured logger with a small fixed set of Prometheus
// counters/gauges: named metrics registered once at construction,
// looked up by name on each Inc/Observe/Set call.
package observability

import (
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/ghaddam/armnn/internal/ports"
)

// PromObs is the process-wide Observability implementation.
type PromObs struct {
	log      zerolog.Logger
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

var (
	processObsOnce sync.Once
	processObs     *PromObs
)

// NewPromObs returns the process-wide Observability. The first call
// registers the profiling subsystem's metric set on the default
// Prometheus registerer and pairs it with a console zerolog writer;
// later calls return that same instance.
func NewPromObs() *PromObs {
	processObsOnce.Do(func() { processObs = newPromObs() })
	return processObs
}

func newPromObs() *PromObs {
	dispatched := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "armnn_packets_dispatched_total",
		Help: "Total inbound packets successfully routed to a handler.",
	})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "armnn_packets_dropped_total",
		Help: "Inbound packets dropped for lack of a registered handler.",
	})
	malformed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "armnn_malformed_packets_total",
		Help: "Inbound packets rejected by a handler's structural checks.",
	})
	bufferExhausted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "armnn_buffer_exhausted_total",
		Help: "Outbound sends dropped because the send buffer had no room.",
	})
	transitions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "armnn_state_transitions_total",
		Help: "Successful profiling session state transitions.",
	})
	state := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "armnn_session_state",
		Help: "Current profiling session state, as its ordinal value.",
	})
	dispatchLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "armnn_dispatch_latency_seconds",
		Help:    "Time spent inside a handler's Invoke call.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	})

	prometheus.MustRegister(dispatched, dropped, malformed, bufferExhausted, transitions, state, dispatchLatency)

	return &PromObs{
		log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
		counters: map[string]prometheus.Counter{
			"armnn_packets_dispatched_total": dispatched,
			"armnn_packets_dropped_total":    dropped,
			"armnn_malformed_packets_total":  malformed,
			"armnn_buffer_exhausted_total":   bufferExhausted,
			"armnn_state_transitions_total":  transitions,
		},
		gauges: map[string]prometheus.Gauge{
			"armnn_session_state": state,
		},
		histos: map[string]prometheus.Observer{
			"armnn_dispatch_latency_seconds": dispatchLatency,
		},
	}
}

func withFields(ctx zerolog.Context, fields []ports.Field) zerolog.Context {
	for _, f := range fields {
		ctx = ctx.Interface(f.Key, f.Value)
	}
	return ctx
}

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	logger := withFields(p.log.With(), fields).Logger()
	logger.Info().Msg(msg)
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	logger := withFields(p.log.With(), fields).Logger()
	logger.Error().Err(err).Msg(msg)
}

func (p *PromObs) LogCritical(msg string, err error, fields ...ports.Field) {
	logger := withFields(p.log.With(), fields).Logger()
	logger.Error().Err(err).Str("severity", "critical").Msg(msg)
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}
