// internal/matrix/matrix.go
//
// Pairwise overlap tables over a fixed corpus.
// Responsibilities:
//   - Build: precompute Compute(words[i], words[j]) for every ordered pair.
//   - Get/At: O(1) lookup by original corpus index.
//   - Direct: the same read API without precomputation.
//
// Notes:
//   - Entries are two-byte overlap.Overlap records in a flat N*N arena indexed i*N+j.
//   - A Matrix is read-only once Build returns and is safe to share between goroutines.
package matrix

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

var (
	// ErrEmptyCorpus is returned when a table is requested for no words.
	ErrEmptyCorpus = errors.New("matrix: empty corpus")
	// ErrLengthMismatch is returned when corpus words differ in length.
	ErrLengthMismatch = errors.New("matrix: word length mismatch")
)

// Matrix is a dense table of overlaps between every ordered pair of corpus words.
type Matrix struct {
	words []overlap.Word
	n     int
	cells []overlap.Overlap
}

// Build computes the full matrix for words using up to workers goroutines
// (runtime.NumCPU() when workers <= 0). Rows are independent, so each worker
// writes a disjoint slice of the arena.
func Build(ctx context.Context, words []overlap.Word, workers int) (*Matrix, error) {
	if err := checkCorpus(words); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	start := time.Now()

	n := len(words)
	m := &Matrix{words: words, n: n, cells: make([]overlap.Overlap, n*n)}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range n {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			row := m.cells[i*n : (i+1)*n]
			for j := range n {
				row[j] = overlap.Compute(words[i], words[j])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build matrix: %w", err)
	}

	metrics.MatrixBuildDuration.Observe(time.Since(start).Seconds())
	metrics.MatrixCells.Set(float64(len(m.cells)))
	return m, nil
}

// Get returns the overlap of words[i] (actual) against words[j] (guess).
// Out-of-range indices panic.
func (m *Matrix) Get(i, j int) overlap.Overlap {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		panic(fmt.Sprintf("matrix: index (%d, %d) out of range for N=%d", i, j, m.n))
	}
	return m.cells[i*m.n+j]
}

// At is Get under the name used by the scorer's table interface.
func (m *Matrix) At(i, j int) overlap.Overlap { return m.Get(i, j) }

// Len returns N, the number of corpus words.
func (m *Matrix) Len() int { return m.n }

// WordLen returns L, the shared word length.
func (m *Matrix) WordLen() int { return m.words[0].Len() }

// Word returns the corpus word at index i.
func (m *Matrix) Word(i int) overlap.Word { return m.words[i] }

// SizeBytes reports the arena footprint (two bytes per entry).
func (m *Matrix) SizeBytes() int { return len(m.cells) * 2 }

// Direct answers lookups by calling overlap.Compute each time. It trades the
// O(N²) memory of Matrix for recomputation on every scoring round.
type Direct struct {
	words []overlap.Word
}

// NewDirect validates words and wraps them in a Direct table.
func NewDirect(words []overlap.Word) (*Direct, error) {
	if err := checkCorpus(words); err != nil {
		return nil, err
	}
	return &Direct{words: words}, nil
}

func (d *Direct) At(i, j int) overlap.Overlap { return overlap.Compute(d.words[i], d.words[j]) }
func (d *Direct) Len() int                    { return len(d.words) }
func (d *Direct) WordLen() int                { return d.words[0].Len() }
func (d *Direct) Word(i int) overlap.Word     { return d.words[i] }

func checkCorpus(words []overlap.Word) error {
	if len(words) == 0 {
		return ErrEmptyCorpus
	}
	l := words[0].Len()
	for i, w := range words {
		if w.Len() != l {
			return fmt.Errorf("%w: word %d %q has length %d, want %d", ErrLengthMismatch, i, w, w.Len(), l)
		}
	}
	return nil
}
