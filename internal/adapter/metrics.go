package adapter

import (
	"github.com/MKhiriev/go-ledger-desk/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts session traffic. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	frames   *prometheus.CounterVec
	auths    *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// NewMetrics creates the session counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Subsystem: "session",
			Name:      "frames_sent_total",
			Help:      "Request frames written to the ledger, by opcode.",
		}, []string{"op"}),
		auths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Subsystem: "session",
			Name:      "handshakes_total",
			Help:      "Completed handshakes, by verdict.",
		}, []string{"result"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Subsystem: "session",
			Name:      "failures_total",
			Help:      "Session I/O failures, by operation and stage.",
		}, []string{"op", "stage"}),
	}

	if reg != nil {
		reg.MustRegister(m.frames, m.auths, m.failures)
	}

	return m
}

func (m *Metrics) frame(op protocol.Opcode) {
	if m == nil {
		return
	}
	m.frames.WithLabelValues(op.String()).Inc()
}

func (m *Metrics) auth(result AuthResult) {
	if m == nil {
		return
	}
	m.auths.WithLabelValues(result.String()).Inc()
}

func (m *Metrics) failure(op, stage string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(op, stage).Inc()
}
