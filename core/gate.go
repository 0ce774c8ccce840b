package core

import "time"

// Challenge pairs a prompt word with the ground truth of its corpus
// membership. A challenge is issued once, compared against once, then
// discarded.
type Challenge struct {
	Prompt string // The word the client must look up
	Answer bool   // Whether Prompt is a member of the corpus
}

// Session tracks a single client's progress through the gate.
type Session struct {
	ID                 string    // Unique session identifier, used for events and logs
	ConsecutiveCorrect uint64    // Correct answers given so far in this run
	LastActivity       time.Time // When the outstanding challenge was issued
	ExpectedAnswer     bool      // Ground truth for the outstanding challenge
}
