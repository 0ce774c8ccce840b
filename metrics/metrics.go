// Package metrics exposes Prometheus instrumentation for the gate.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Answer result label values.
const (
	ResultCorrect   = "correct"
	ResultIncorrect = "incorrect"
	ResultExpired   = "expired"
	ResultMalformed = "malformed"
)

// GateMetrics holds the gate's Prometheus collectors. A nil
// *GateMetrics is valid and records nothing, so tests and embedded
// uses can skip registration entirely.
type GateMetrics struct {
	challengesIssued prometheus.Counter
	answers          *prometheus.CounterVec
	rewardsGranted   prometheus.Counter
	activeSessions   prometheus.Gauge
}

// New registers the gate collectors with reg and returns them.
func New(reg prometheus.Registerer) *GateMetrics {
	factory := promauto.With(reg)
	return &GateMetrics{
		challengesIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "dictgate_challenges_issued_total",
			Help: "Challenges issued, counting both new sessions and advancements.",
		}),
		answers: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dictgate_answers_total",
			Help: "Answers processed, labeled by outcome.",
		}, []string{"result"}),
		rewardsGranted: factory.NewCounter(prometheus.CounterOpts{
			Name: "dictgate_rewards_granted_total",
			Help: "Completed runs that earned the reward token.",
		}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dictgate_active_sessions",
			Help: "Sessions currently held in the store.",
		}),
	}
}

// ChallengeIssued records one issued challenge.
func (m *GateMetrics) ChallengeIssued() {
	if m == nil {
		return
	}
	m.challengesIssued.Inc()
}

// AnswerProcessed records one answer with its outcome label.
func (m *GateMetrics) AnswerProcessed(result string) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(result).Inc()
}

// RewardGranted records one completed run.
func (m *GateMetrics) RewardGranted() {
	if m == nil {
		return
	}
	m.rewardsGranted.Inc()
}

// SessionOpened tracks a session entering the store.
func (m *GateMetrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

// SessionClosed tracks a session leaving the store.
func (m *GateMetrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}
