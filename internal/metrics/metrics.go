// Package metrics exposes Prometheus collectors for orchestrator activity:
// connect attempts, facade operations, and the current session status.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Shulepov/wallet-kit/provider"
)

// Metrics implements provider.Recorder on Prometheus collectors.
type Metrics struct {
	connects        *prometheus.CounterVec
	operations      *prometheus.CounterVec
	sessionStatus   *prometheus.GaugeVec
	connectDuration prometheus.Histogram
}

var _ provider.Recorder = (*Metrics)(nil)

// New creates the collectors and registers them on reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry or a private
// one in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		connects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "walletkit_connects_total",
			Help: "Wallet connect attempts by wallet and outcome.",
		}, []string{"wallet", "outcome"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "walletkit_operations_total",
			Help: "Facade operations by operation and outcome.",
		}, []string{"op", "outcome"}),
		sessionStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "walletkit_session_status",
			Help: "Current session status; the live status holds 1.",
		}, []string{"status"}),
		connectDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletkit_connect_duration_seconds",
			Help:    "Wall time of adapter connect calls.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(m.connects, m.operations, m.sessionStatus, m.connectDuration)
	return m
}

// RecordConnect counts one connect attempt and observes its duration.
func (m *Metrics) RecordConnect(wallet string, success bool, elapsed time.Duration) {
	m.connects.WithLabelValues(wallet, outcome(success)).Inc()
	m.connectDuration.Observe(elapsed.Seconds())
}

// RecordOperation counts one facade operation.
func (m *Metrics) RecordOperation(op string, success bool) {
	m.operations.WithLabelValues(op, outcome(success)).Inc()
}

// RecordStatus marks the live session status. Exactly one status label holds
// 1 after each transition.
func (m *Metrics) RecordStatus(status provider.Status) {
	for _, s := range []provider.Status{
		provider.StatusDisconnected,
		provider.StatusConnecting,
		provider.StatusConnected,
	} {
		value := 0.0
		if s == status {
			value = 1.0
		}
		m.sessionStatus.WithLabelValues(s.String()).Set(value)
	}
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
