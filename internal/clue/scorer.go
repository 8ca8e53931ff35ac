// internal/clue/scorer.go
//
// Clue selection.
// Responsibilities:
//   - Tally, for each candidate clue, how many universe words fall into each feedback bucket.
//   - Reduce the tally with the configured Objective.
//   - Pick the candidate with the smallest score, scanning candidates in parallel.
//
// Notes:
//   - The table is shared read-only; each worker owns its tally and local best.
//   - Ties go to the lowest corpus index. Callers must not depend on that choice.
package clue

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/metrics"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/overlap"
)

// ErrNoCandidates is returned when there is nothing to score.
var ErrNoCandidates = errors.New("clue: no candidates")

// Table is the read side of an overlap table over a fixed corpus.
// At(i, j) is the feedback for word i as the actual word and word j as the guess.
type Table interface {
	Len() int
	WordLen() int
	Word(i int) overlap.Word
	At(i, j int) overlap.Overlap
}

// Clue is a candidate guess together with its objective value.
type Clue struct {
	Index int
	Word  overlap.Word
	Value int
}

func (c Clue) String() string { return fmt.Sprintf("%s (%d)", c.Word, c.Value) }

// Options configures a Scorer.
type Options struct {
	Objective Objective
	Universe  Universe
	Workers   int // runtime.NumCPU() when <= 0
}

// Scorer picks the most discriminating clue among a candidate set.
type Scorer struct {
	table Table
	opts  Options
}

// NewScorer returns a Scorer over t.
func NewScorer(t Table, opts Options) *Scorer {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Scorer{table: t, opts: opts}
}

// Options returns the effective configuration.
func (s *Scorer) Options() Options { return s.opts }

// Score computes the objective value of corpus word i as a clue against the
// configured universe, given the current candidates.
func (s *Scorer) Score(i int, candidates []int) int {
	return s.opts.Objective.reduce(s.tally(i, candidates, make([]int, overlap.Buckets(s.table.WordLen()))))
}

func (s *Scorer) tally(i int, candidates []int, buckets []int) []int {
	clear(buckets)
	l := s.table.WordLen()
	if s.opts.Universe == UniverseCandidates {
		for _, j := range candidates {
			buckets[s.table.At(i, j).Index(l)]++
		}
		return buckets
	}
	for j := range s.table.Len() {
		buckets[s.table.At(i, j).Index(l)]++
	}
	return buckets
}

// Best scores every candidate index and returns the clue with the smallest value.
func (s *Scorer) Best(ctx context.Context, candidates []int) (Clue, error) {
	if len(candidates) == 0 || s.table.Len() == 0 {
		return Clue{}, ErrNoCandidates
	}
	start := time.Now()
	defer func() {
		metrics.ScoreDuration.WithLabelValues(s.opts.Objective.String()).Observe(time.Since(start).Seconds())
	}()

	workers := min(s.opts.Workers, len(candidates))
	chunk := (len(candidates) + workers - 1) / workers
	partial := make([]Clue, 0, workers)
	for lo := 0; lo < len(candidates); lo += chunk {
		partial = append(partial, Clue{Index: -1})
	}

	g, gCtx := errgroup.WithContext(ctx)
	for w := range partial {
		lo := w * chunk
		hi := min(lo+chunk, len(candidates))
		g.Go(func() error {
			buckets := make([]int, overlap.Buckets(s.table.WordLen()))
			best := Clue{Index: -1}
			for _, i := range candidates[lo:hi] {
				if err := gCtx.Err(); err != nil {
					return err
				}
				v := s.opts.Objective.reduce(s.tally(i, candidates, buckets))
				if better(v, i, best) {
					best = Clue{Index: i, Value: v}
				}
			}
			partial[w] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Clue{}, fmt.Errorf("score candidates: %w", err)
	}

	best := Clue{Index: -1}
	for _, c := range partial {
		if c.Index >= 0 && better(c.Value, c.Index, best) {
			best = c
		}
	}
	best.Word = s.table.Word(best.Index)
	return best, nil
}

func better(value, index int, best Clue) bool {
	if best.Index < 0 {
		return true
	}
	if value != best.Value {
		return value < best.Value
	}
	return index < best.Index
}
