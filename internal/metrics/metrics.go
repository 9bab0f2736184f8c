// Package metrics counts controller activity. Nothing is served; the
// registry can be dumped to a text file on exit.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Intent outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeError  = "error"
	OutcomeBusy   = "busy"
	OutcomePanic  = "panic"
	OutcomeAbsent = "wallet_absent"
)

// Recorder holds the counters. A nil *Recorder records nothing.
type Recorder struct {
	registry      *prometheus.Registry
	intents       *prometheus.CounterVec
	notifications *prometheus.CounterVec
	reverts       *prometheus.CounterVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	intents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "w3mint_intents_total",
		Help: "User intents by outcome",
	}, []string{"intent", "outcome"})

	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "w3mint_notifications_total",
		Help: "Provider notifications received",
	}, []string{"event"})

	reverts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "w3mint_mint_reverts_total",
		Help: "Failed mints by revert reason",
	}, []string{"reason"})

	r := prometheus.NewRegistry()
	r.MustRegister(intents, notifications, reverts)

	return &Recorder{
		registry:      r,
		intents:       intents,
		notifications: notifications,
		reverts:       reverts,
	}
}

// Registry exposes the underlying registry.
func (m *Recorder) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Recorder) Intent(intent, outcome string) {
	if m == nil {
		return
	}
	m.intents.WithLabelValues(intent, outcome).Inc()
}

func (m *Recorder) Notification(event string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(event).Inc()
}

// MintRevert counts a failed mint; an empty reason is counted as "unknown".
func (m *Recorder) MintRevert(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.reverts.WithLabelValues(reason).Inc()
}

// WriteTextfile writes the registry in text exposition format.
func (m *Recorder) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
