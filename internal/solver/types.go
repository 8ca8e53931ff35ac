// internal/solver/types.go
//
// Core type definitions for the elimination loop.
// Defines:
//   - State: searching or converged.
//   - Mode: how feedback is obtained (interactive or automated).
//   - Session: the candidate set and round history of one solve.
//   - Source: where a round's feedback comes from.

package solver

import (
	"context"
	"slices"
	"sync"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/clue"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/overlap"
)

// State is the coarse lifecycle of a Session.
type State string

const (
	StateSearching State = "searching"
	StateConverged State = "converged"
)

// Mode labels how a session obtains feedback.
type Mode string

const (
	ModeInteractive Mode = "interactive"
	ModeAutomated   Mode = "automated"
)

// Source produces the observed overlap for a round's clue.
type Source interface {
	Observe(ctx context.Context, c clue.Clue) (overlap.Overlap, error)
}

// Session holds the state of a single solve.
// All fields are guarded by mu; use the accessor methods from other goroutines.
type Session struct {
	ID   string
	Mode Mode

	mu         sync.Mutex
	state      State
	candidates []int       // corpus indices still consistent with all feedback
	history    []clue.Clue // clues in the order they were played
	pending    *clue.Clue  // clue awaiting feedback, if any
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Remaining reports the size of the candidate set.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.candidates)
}

// Candidates returns a copy of the candidate corpus indices.
func (s *Session) Candidates() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.candidates)
}

// History returns a copy of the clues played so far.
func (s *Session) History() []clue.Clue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// Pending returns the clue awaiting feedback.
func (s *Session) Pending() (clue.Clue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return clue.Clue{}, false
	}
	return *s.pending, true
}
