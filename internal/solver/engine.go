// internal/solver/engine.go
//
// Elimination loop over a fixed corpus.
// Responsibilities:
//   - Start sessions with the full corpus as the candidate set.
//   - Pick each round's clue through the clue.Scorer.
//   - Filter the candidate set by the observed overlap.
//   - Track state transitions: searching → converged (at most one candidate left).
//
// Notes:
//   - The table is indexed by original corpus position, so it stays valid as the
//     candidate set shrinks.
//   - The clue is always drawn from the candidates, so every round removes at least
//     the clue itself unless it was the answer.

package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/clue"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/feedback"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/metrics"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/overlap"
)

var (
	// ErrConverged is returned when feedback is applied to a finished session.
	ErrConverged = errors.New("session converged")
	// ErrNoPendingClue is returned by Apply when no clue is awaiting feedback.
	ErrNoPendingClue = errors.New("no clue awaiting feedback")
	// ErrInvalidFeedback is returned for overlaps that no pair of words can produce.
	ErrInvalidFeedback = errors.New("invalid feedback")
	// ErrStalled is returned when a round fails to shrink the candidate set.
	ErrStalled = errors.New("candidate set did not shrink")
	// ErrInvalidTarget is returned when an automated target has the wrong length.
	ErrInvalidTarget = errors.New("invalid target")
)

// Solver runs elimination rounds against one corpus table.
// It holds no per-solve state and is safe for concurrent use.
type Solver struct {
	table  clue.Table
	scorer *clue.Scorer
	log    zerolog.Logger
}

// New constructs a Solver.
func New(t clue.Table, scorer *clue.Scorer, logger zerolog.Logger) *Solver {
	return &Solver{table: t, scorer: scorer, log: logger}
}

// Table exposes the corpus table.
func (s *Solver) Table() clue.Table { return s.table }

// Words resolves corpus indices to words.
func (s *Solver) Words(indices []int) []overlap.Word {
	out := make([]overlap.Word, len(indices))
	for k, i := range indices {
		out[k] = s.table.Word(i)
	}
	return out
}

// Lookup returns the corpus index of w.
func (s *Solver) Lookup(w overlap.Word) (int, bool) {
	for i := range s.table.Len() {
		if s.table.Word(i).Equal(w) {
			return i, true
		}
	}
	return -1, false
}

// NewSession starts a session with every corpus word as a candidate.
func (s *Solver) NewSession(mode Mode) *Session {
	cands := make([]int, s.table.Len())
	for i := range cands {
		cands[i] = i
	}
	sess := &Session{ID: uuid.NewString(), Mode: mode, state: StateSearching, candidates: cands}
	s.settle(sess)
	return sess
}

// Next returns the clue for the current round. done is true once the session has
// converged, in which case no clue is returned. Calling Next again before Apply
// returns the same pending clue.
func (s *Solver) Next(ctx context.Context, sess *Session) (c clue.Clue, done bool, err error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if s.settle(sess) {
		return clue.Clue{}, true, nil
	}
	if sess.pending != nil {
		return *sess.pending, false, nil
	}

	c, err = s.scorer.Best(ctx, sess.candidates)
	if err != nil {
		return clue.Clue{}, false, fmt.Errorf("round %d: %w", len(sess.history)+1, err)
	}
	sess.pending = &c
	s.log.Debug().
		Str("session", sess.ID).
		Int("round", len(sess.history)+1).
		Int("remaining", len(sess.candidates)).
		Str("clue", c.Word.String()).
		Int("value", c.Value).
		Msg("clue selected")
	return c, false, nil
}

// Apply filters the candidate set by the feedback observed for the pending clue
// and records the clue in the session history.
func (s *Solver) Apply(sess *Session, obs overlap.Overlap) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.state == StateConverged {
		return ErrConverged
	}
	if sess.pending == nil {
		return ErrNoPendingClue
	}
	if !obs.Valid(s.table.WordLen()) {
		return fmt.Errorf("%w: %s for word length %d", ErrInvalidFeedback, obs, s.table.WordLen())
	}

	c := *sess.pending
	before := len(sess.candidates)
	kept := sess.candidates[:0]
	for _, v := range sess.candidates {
		if s.table.At(v, c.Index) == obs {
			kept = append(kept, v)
		}
	}
	sess.candidates = kept
	sess.history = append(sess.history, c)
	sess.pending = nil
	metrics.Rounds.WithLabelValues(string(sess.Mode)).Inc()

	s.log.Debug().
		Str("session", sess.ID).
		Str("clue", c.Word.String()).
		Stringer("feedback", obs).
		Int("before", before).
		Int("after", len(kept)).
		Msg("candidates filtered")

	if s.settle(sess) {
		return nil
	}
	if len(kept) >= before {
		return fmt.Errorf("%w: %d candidates after %q", ErrStalled, len(kept), c.Word)
	}
	return nil
}

// settle moves sess to converged when at most one candidate remains.
// The caller must hold sess.mu (or own sess exclusively).
func (s *Solver) settle(sess *Session) bool {
	if sess.state == StateConverged {
		return true
	}
	if len(sess.candidates) > 1 {
		return false
	}
	sess.state = StateConverged
	outcome := "solved"
	if len(sess.candidates) == 0 {
		outcome = "empty"
	}
	metrics.Converged.WithLabelValues(outcome).Inc()
	return true
}

// Run plays rounds until the session converges and returns the final candidates.
func (s *Solver) Run(ctx context.Context, sess *Session, src Source) ([]overlap.Word, error) {
	for {
		c, done, err := s.Next(ctx, sess)
		if err != nil {
			return nil, err
		}
		if done {
			return s.Words(sess.Candidates()), nil
		}
		obs, err := src.Observe(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("observe %q: %w", c.Word, err)
		}
		if err := s.Apply(sess, obs); err != nil {
			return nil, err
		}
	}
}

// SolveAuto simulates a game against target and returns the clues in the order
// they were chosen. The target does not have to be part of the corpus; if no
// corpus word is consistent with it, clue.ErrNoCandidates is returned along with
// the clues played so far.
func (s *Solver) SolveAuto(ctx context.Context, target overlap.Word) ([]clue.Clue, error) {
	if target.Len() != s.table.WordLen() {
		return nil, fmt.Errorf("%w: %q has length %d, want %d", ErrInvalidTarget, target, target.Len(), s.table.WordLen())
	}
	sess := s.NewSession(ModeAutomated)
	final, err := s.Run(ctx, sess, feedback.NewTarget(target))
	if err != nil {
		return sess.History(), err
	}
	if len(final) == 0 {
		return sess.History(), fmt.Errorf("solve %q: %w", target, clue.ErrNoCandidates)
	}
	return sess.History(), nil
}

// Result is the outcome of one automated solve.
type Result struct {
	Target  overlap.Word
	Clues   []clue.Clue
	Elapsed time.Duration
}

// SolveRange runs SolveAuto with every corpus word in [from, to) as the target.
func (s *Solver) SolveRange(ctx context.Context, from, to int) ([]Result, error) {
	if from < 0 || to > s.table.Len() || from > to {
		return nil, fmt.Errorf("range [%d, %d) outside corpus of %d words", from, to, s.table.Len())
	}
	out := make([]Result, 0, to-from)
	for i := from; i < to; i++ {
		start := time.Now()
		target := s.table.Word(i)
		clues, err := s.SolveAuto(ctx, target)
		if err != nil {
			return out, err
		}
		out = append(out, Result{Target: target, Clues: clues, Elapsed: time.Since(start)})
	}
	return out, nil
}
