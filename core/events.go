package core

import "time"

// GateEventKind identifies a gate state transition.
type GateEventKind string

const (
	EventSessionStarted    GateEventKind = "session_started"
	EventChallengeAdvanced GateEventKind = "challenge_advanced"
	EventSessionRejected   GateEventKind = "session_rejected"
	EventRewardGranted     GateEventKind = "reward_granted"
)

// RejectReason explains why a session was terminated.
type RejectReason string

const (
	RejectWrong     RejectReason = "wrong"
	RejectExpired   RejectReason = "expired"
	RejectMalformed RejectReason = "malformed"
)

// GateEvent is published after each state transition so other systems
// (scoreboards, abuse monitoring) can observe gate activity.
type GateEvent struct {
	SessionID          string        `json:"session_id"`
	ClientID           string        `json:"client_id"`
	Kind               GateEventKind `json:"kind"`
	Reason             RejectReason  `json:"reason,omitempty"`
	ConsecutiveCorrect uint64        `json:"consecutive_correct"`
	At                 time.Time     `json:"at"`
}
