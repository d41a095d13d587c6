package engine

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Agent plays a session through the same Place command a human uses.
//
// A turn is: plan the best move, wait the pacing delay, re-check that
// autoplay is still enabled and the game is still running, then place.
// The re-check after the delay is the only cancellation point; the search
// itself always runs to completion.
type Agent struct {
	session *Session
	weights Weights
	delay   time.Duration
	logger  *log.Logger

	// cooperative driver state
	pending *Move
	dueAt   time.Duration
}

// AgentOption customizes an Agent.
type AgentOption func(*Agent)

// WithDelay overrides the pacing delay from the session config.
func WithDelay(d time.Duration) AgentOption {
	return func(a *Agent) {
		if d >= 0 {
			a.delay = d
		}
	}
}

// WithWeights overrides the scoring weights from the session config.
func WithWeights(w Weights) AgentOption {
	return func(a *Agent) {
		a.weights = w
	}
}

// WithAgentLogger sets the agent logger.
func WithAgentLogger(logger *log.Logger) AgentOption {
	return func(a *Agent) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAgent creates an agent for s using the session's delay and weights.
func NewAgent(s *Session, opts ...AgentOption) *Agent {
	a := &Agent{
		session: s,
		weights: s.cfg.Weights,
		delay:   s.cfg.AIDelay,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Active reports whether the agent is allowed to move.
func (a *Agent) Active() bool {
	return a.session.AIEnabled() && a.session.Phase() == PhasePlaying
}

// Pending returns the planned move waiting for its delay, if any.
func (a *Agent) Pending() (Move, bool) {
	if a.pending == nil {
		return Move{}, false
	}
	return *a.pending, true
}

// Plan picks the best move for the current board and batch. If nothing
// fits it asks the session for a new batch and searches once more.
func (a *Agent) Plan() (Move, bool) {
	if m, ok := FindBestMove(a.session.board, a.session.batch, a.weights); ok {
		return m, true
	}

	a.logger.Debug("no move found, regenerating batch")
	if err := a.session.Regenerate(); err != nil {
		return Move{}, false
	}
	return FindBestMove(a.session.board, a.session.batch, a.weights)
}

// commit places m unless autoplay was cancelled during the delay.
func (a *Agent) commit(m Move) (bool, error) {
	if !a.Active() {
		return false, nil
	}
	if err := a.session.Place(m.ShapeID, m.Row, m.Col); err != nil {
		return false, err
	}
	a.logger.Debug("placed", "shape", m.ShapeIndex, "row", m.Row, "col", m.Col, "eval", m.Score)
	return true, nil
}

// Step advances the agent cooperatively. elapsed is a monotonic clock
// supplied by the host (e.g. ticks converted to time). The first call of a
// turn plans a move; the call at or after the delay commits it.
// Returns true when a shape was placed.
func (a *Agent) Step(elapsed time.Duration) (bool, error) {
	if !a.Active() {
		a.pending = nil
		return false, nil
	}

	if a.pending == nil {
		m, ok := a.Plan()
		if !ok {
			return false, nil
		}
		a.pending = &m
		a.dueAt = elapsed + a.delay
	}

	if elapsed < a.dueAt {
		return false, nil
	}

	m := *a.pending
	a.pending = nil
	return a.commit(m)
}

// Cancel drops any planned move.
func (a *Agent) Cancel() {
	a.pending = nil
}

// Run plays turns until autoplay is disabled, the game ends or ctx is done.
// It blocks; the caller must not drive the session from another goroutine
// while Run is active.
func (a *Agent) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !a.Active() {
			return nil
		}

		m, ok := a.Plan()
		if !ok {
			return nil
		}

		if a.delay > 0 {
			timer := time.NewTimer(a.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		if _, err := a.commit(m); err != nil {
			return err
		}
	}
}
