// Package service implements the gate's verification engine: the state
// machine that walks each client from first contact to reward or
// rejection.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dictgate/dictgate/core"
	"github.com/dictgate/dictgate/corpus"
	"github.com/dictgate/dictgate/metrics"
	"github.com/dictgate/dictgate/ports"
)

// Response bodies the gate produces. Prompt lines carry the challenge
// word; the remaining bodies are fixed.
const (
	PromptFormat      = "Check if the following word is in the dictionary: %s\n"
	ResponseIncorrect = "Your response was incorrect\n"
	ResponseMalformed = "Your response failed in some way\n"
)

// Config carries the tunable gate parameters.
type Config struct {
	// Threshold is the number of consecutive correct answers required
	// before the reward is issued.
	Threshold uint64

	// Window is the maximum time allowed between issuing a challenge
	// and receiving its answer.
	Window time.Duration
}

// GateService decides every state transition for every client. All
// requests are serialized through a single mutex so the full
// lookup/decide/mutate sequence runs as one critical section; with
// request volume bounded by the answer window this is an accepted
// bottleneck, not a scalability concern.
type GateService struct {
	store   ports.SessionStore
	corpus  *corpus.Corpus
	reward  ports.RewardIssuer
	events  ports.EventPublisher
	logger  *slog.Logger
	metrics *metrics.GateMetrics

	threshold uint64
	window    time.Duration

	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// Option customizes a GateService beyond its required collaborators.
type Option func(*GateService)

// WithEvents attaches a best-effort event publisher.
func WithEvents(pub ports.EventPublisher) Option {
	return func(s *GateService) { s.events = pub }
}

// WithLogger replaces the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *GateService) { s.logger = logger }
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *metrics.GateMetrics) Option {
	return func(s *GateService) { s.metrics = m }
}

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *GateService) { s.now = now }
}

// WithRand replaces the challenge randomness source, for tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *GateService) { s.rng = rng }
}

// NewGateService creates the verification engine.
func NewGateService(cfg Config, store ports.SessionStore, corp *corpus.Corpus, reward ports.RewardIssuer, opts ...Option) *GateService {
	s := &GateService{
		store:     store,
		corpus:    corp,
		reward:    reward,
		logger:    slog.Default(),
		threshold: cfg.Threshold,
		window:    cfg.Window,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue handles a new-session request. A client with no session gets a
// fresh challenge and a session at zero progress; a client with a run
// already in progress is ignored and receives an empty body.
func (s *GateService) Issue(ctx context.Context, clientID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists, err := s.store.Get(ctx, clientID)
	if err != nil {
		return "", fmt.Errorf("session lookup: %w", err)
	}
	if exists {
		return "", nil
	}

	challenge := s.corpus.GenerateChallenge(s.rng)
	session := core.Session{
		ID:             uuid.New().String(),
		LastActivity:   s.now(),
		ExpectedAnswer: challenge.Answer,
	}
	if err := s.store.Insert(ctx, clientID, session); err != nil {
		return "", fmt.Errorf("session insert: %w", err)
	}

	s.metrics.SessionOpened()
	s.metrics.ChallengeIssued()
	s.publish(ctx, core.GateEvent{
		SessionID: session.ID,
		ClientID:  clientID,
		Kind:      core.EventSessionStarted,
		At:        session.LastActivity,
	})
	s.logger.Debug("session started", "client", clientID, "session", session.ID)

	return fmt.Sprintf(PromptFormat, challenge.Prompt), nil
}

// Answer handles a solution submission. A client with no session is
// ignored and receives an empty body. Every failure path (expired,
// unparseable, wrong) terminates the session; a correct answer either
// advances the run with a new challenge or, past the threshold,
// removes the session and issues the reward.
func (s *GateService) Answer(ctx context.Context, clientID string, body []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists, err := s.store.Get(ctx, clientID)
	if err != nil {
		return "", fmt.Errorf("session lookup: %w", err)
	}
	if !exists {
		return "", nil
	}

	now := s.now()

	// Timing is checked before parsing and comparison: a slow answer
	// is wrong even when its value is right.
	if !now.Before(session.LastActivity.Add(s.window)) {
		return s.reject(ctx, clientID, session, core.RejectExpired, metrics.ResultExpired, ResponseIncorrect)
	}

	answer, perr := core.ParseAnswer(body)
	if perr != nil {
		return s.reject(ctx, clientID, session, core.RejectMalformed, metrics.ResultMalformed, ResponseMalformed)
	}
	if answer != session.ExpectedAnswer {
		return s.reject(ctx, clientID, session, core.RejectWrong, metrics.ResultIncorrect, ResponseIncorrect)
	}

	s.metrics.AnswerProcessed(metrics.ResultCorrect)

	if session.ConsecutiveCorrect+1 > s.threshold {
		return s.grant(ctx, clientID, session, now)
	}

	challenge := s.corpus.GenerateChallenge(s.rng)
	err = s.store.Update(ctx, clientID, func(sess *core.Session) {
		sess.ConsecutiveCorrect++
		sess.LastActivity = now
		sess.ExpectedAnswer = challenge.Answer
	})
	if err != nil {
		return "", fmt.Errorf("session update: %w", err)
	}

	s.metrics.ChallengeIssued()
	s.publish(ctx, core.GateEvent{
		SessionID:          session.ID,
		ClientID:           clientID,
		Kind:               core.EventChallengeAdvanced,
		ConsecutiveCorrect: session.ConsecutiveCorrect + 1,
		At:                 now,
	})

	return fmt.Sprintf(PromptFormat, challenge.Prompt), nil
}

// reject terminates the session and returns the failure body.
func (s *GateService) reject(ctx context.Context, clientID string, session core.Session, reason core.RejectReason, result, response string) (string, error) {
	if err := s.store.Remove(ctx, clientID); err != nil {
		return "", fmt.Errorf("session remove: %w", err)
	}

	s.metrics.SessionClosed()
	s.metrics.AnswerProcessed(result)
	s.publish(ctx, core.GateEvent{
		SessionID:          session.ID,
		ClientID:           clientID,
		Kind:               core.EventSessionRejected,
		Reason:             reason,
		ConsecutiveCorrect: session.ConsecutiveCorrect,
		At:                 s.now(),
	})
	s.logger.Info("session rejected",
		"client", clientID,
		"session", session.ID,
		"reason", reason,
		"progress", session.ConsecutiveCorrect)

	return response, nil
}

// grant issues the reward and removes the completed session. The
// reward is issued before removal: a failed issuance must not consume
// the run.
func (s *GateService) grant(ctx context.Context, clientID string, session core.Session, now time.Time) (string, error) {
	token, err := s.reward.Issue(clientID)
	if err != nil {
		return "", fmt.Errorf("reward issue: %w", err)
	}
	if err := s.store.Remove(ctx, clientID); err != nil {
		return "", fmt.Errorf("session remove: %w", err)
	}

	s.metrics.SessionClosed()
	s.metrics.RewardGranted()
	s.publish(ctx, core.GateEvent{
		SessionID:          session.ID,
		ClientID:           clientID,
		Kind:               core.EventRewardGranted,
		ConsecutiveCorrect: session.ConsecutiveCorrect + 1,
		At:                 now,
	})
	s.logger.Info("reward granted", "client", clientID, "session", session.ID)

	return token, nil
}

func (s *GateService) publish(ctx context.Context, event core.GateEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishGateEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish gate event", "kind", event.Kind, "error", err)
	}
}
