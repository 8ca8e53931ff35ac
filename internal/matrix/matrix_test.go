package matrix

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/overlap"
)

func words(ss ...string) []overlap.Word {
	out := make([]overlap.Word, len(ss))
	for i, s := range ss {
		out[i] = overlap.NewWord(s)
	}
	return out
}

var sample = words("plant", "areas", "donee", "sloth", "skint", "eerie", "llama", "allot")

func TestBuild_MatchesCompute(t *testing.T) {
	for _, workers := range []int{0, 1, 3} {
		m, err := Build(context.Background(), sample, workers)
		require.NoError(t, err)
		require.Equal(t, len(sample), m.Len())
		assert.Equal(t, 5, m.WordLen())
		assert.Equal(t, len(sample)*len(sample)*2, m.SizeBytes())
		for i := range sample {
			for j := range sample {
				assert.Equal(t, overlap.Compute(sample[i], sample[j]), m.Get(i, j), "workers=%d (%d,%d)", workers, i, j)
			}
		}
	}
}

func TestBuild_DiagonalIsPerfect(t *testing.T) {
	m, err := Build(context.Background(), sample, 2)
	require.NoError(t, err)
	for i := range sample {
		assert.Equal(t, overlap.Perfect(5), m.At(i, i))
	}
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(context.Background(), nil, 1)
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = Build(context.Background(), words("plant", "tree"), 1)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, sample, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGet_OutOfRangePanics(t *testing.T) {
	m, err := Build(context.Background(), sample, 1)
	require.NoError(t, err)
	assert.Panics(t, func() { m.Get(len(sample), 0) })
	assert.Panics(t, func() { m.Get(0, -1) })
}

func TestDirect_MatchesMatrix(t *testing.T) {
	m, err := Build(context.Background(), sample, 2)
	require.NoError(t, err)
	d, err := NewDirect(sample)
	require.NoError(t, err)
	require.Equal(t, m.Len(), d.Len())
	for i := range sample {
		assert.Equal(t, m.Word(i), d.Word(i))
		for j := range sample {
			assert.Equal(t, m.At(i, j), d.At(i, j))
		}
	}

	_, err = NewDirect(nil)
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func BenchmarkBuild(b *testing.B) {
	corpus := make([]overlap.Word, 0, 26*26)
	for x := 'a'; x <= 'z'; x++ {
		for y := 'a'; y <= 'z'; y++ {
			corpus = append(corpus, overlap.Word{x, y, 'a', y, x})
		}
	}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := Build(context.Background(), corpus, 0); err != nil {
			b.Fatal(err)
		}
	}
}
