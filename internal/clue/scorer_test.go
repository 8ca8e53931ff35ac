package clue

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/matrix"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/overlap"
)

var corpus = []string{
	"plant", "areas", "donee", "sloth", "skint", "crane", "eerie", "llama",
	"allot", "sassy", "geese", "speed", "erase", "table", "stale", "slate",
}

func buildMatrix(t testing.TB, ss []string) *matrix.Matrix {
	t.Helper()
	words := make([]overlap.Word, len(ss))
	for i, s := range ss {
		words[i] = overlap.NewWord(s)
	}
	m, err := matrix.Build(context.Background(), words, 2)
	require.NoError(t, err)
	return m
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestObjective_Reduce(t *testing.T) {
	tally := []int{3, 1, 0, 0}
	assert.Equal(t, 3, MinimiseLargestBucket.reduce(tally))
	// mean 1: 4 + 0 + 1 + 1
	assert.Equal(t, 6, MinimiseVariance.reduce(tally))
	assert.Equal(t, 0, MinimiseVariance.reduce([]int{2, 2, 2}))
}

func TestParse(t *testing.T) {
	o, err := ParseObjective("variance")
	require.NoError(t, err)
	assert.Equal(t, MinimiseVariance, o)
	o, err = ParseObjective("")
	require.NoError(t, err)
	assert.Equal(t, MinimiseLargestBucket, o)
	_, err = ParseObjective("entropy")
	assert.Error(t, err)

	u, err := ParseUniverse("Candidates")
	require.NoError(t, err)
	assert.Equal(t, UniverseCandidates, u)
	_, err = ParseUniverse("everything")
	assert.Error(t, err)
}

// Best must agree with a sequential scan for every objective, universe and worker count.
func TestBest_MatchesSequentialScan(t *testing.T) {
	m := buildMatrix(t, corpus)
	subsets := map[string][]int{
		"all":    allIndices(len(corpus)),
		"subset": {0, 3, 4, 7, 12, 15},
		"pair":   {5, 9},
		"single": {11},
	}
	for _, obj := range []Objective{MinimiseLargestBucket, MinimiseVariance} {
		for _, uni := range []Universe{UniverseCorpus, UniverseCandidates} {
			for name, cands := range subsets {
				for _, workers := range []int{1, 2, 5, 64} {
					t.Run(fmt.Sprintf("%s/%s/%s/%d", obj, uni, name, workers), func(t *testing.T) {
						s := NewScorer(m, Options{Objective: obj, Universe: uni, Workers: workers})
						got, err := s.Best(context.Background(), cands)
						require.NoError(t, err)

						want := Clue{Index: -1}
						for _, i := range cands {
							if v := s.Score(i, cands); better(v, i, want) {
								want = Clue{Index: i, Value: v}
							}
						}
						assert.Equal(t, want.Value, got.Value)
						assert.Equal(t, want.Index, got.Index)
						assert.Equal(t, m.Word(got.Index), got.Word)
						assert.Contains(t, cands, got.Index)
					})
				}
			}
		}
	}
}

func TestScore_LargestBucketCountsUniverse(t *testing.T) {
	m := buildMatrix(t, corpus)
	s := NewScorer(m, Options{Universe: UniverseCorpus})
	for i := range corpus {
		v := s.Score(i, nil)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, len(corpus))
	}

	// against the candidates only, a single candidate always fills one bucket
	s = NewScorer(m, Options{Universe: UniverseCandidates})
	assert.Equal(t, 1, s.Score(0, []int{0}))
}

func TestBest_Empty(t *testing.T) {
	m := buildMatrix(t, corpus)
	_, err := NewScorer(m, Options{}).Best(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestBest_Cancelled(t *testing.T) {
	m := buildMatrix(t, corpus)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewScorer(m, Options{Workers: 2}).Best(ctx, allIndices(len(corpus)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBest_DirectTableAgrees(t *testing.T) {
	m := buildMatrix(t, corpus)
	words := make([]overlap.Word, len(corpus))
	for i := range corpus {
		words[i] = m.Word(i)
	}
	d, err := matrix.NewDirect(words)
	require.NoError(t, err)

	cands := allIndices(len(corpus))
	a, err := NewScorer(m, Options{Workers: 3}).Best(context.Background(), cands)
	require.NoError(t, err)
	b, err := NewScorer(d, Options{Workers: 3}).Best(context.Background(), cands)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func BenchmarkBest(b *testing.B) {
	m := buildMatrix(b, corpus)
	s := NewScorer(m, Options{})
	cands := allIndices(len(corpus))
	for b.Loop() {
		if _, err := s.Best(context.Background(), cands); err != nil {
			b.Fatal(err)
		}
	}
}
