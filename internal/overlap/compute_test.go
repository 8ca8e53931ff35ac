package overlap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_ReferenceScenarios(t *testing.T) {
	tests := []struct {
		actual, guess string
		want          Overlap
	}{
		{"plant", "areas", New(1, 0)},
		{"plant", "donee", New(1, 0)},
		{"plant", "sloth", New(1, 1)},
		{"plant", "skint", New(0, 2)},
		{"plant", "plant", New(0, 5)},
		{"plant", "bbbbb", New(0, 0)},
		{"abcde", "eabcd", New(5, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.actual+"/"+tt.guess, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(NewWord(tt.actual), NewWord(tt.guess)))
		})
	}
}

// Duplicate letters follow the position-ordered consumption rule.
func TestCompute_DuplicateLetters(t *testing.T) {
	tests := []struct {
		actual, guess string
		want          Overlap
	}{
		// the exact final 'e' consumes the only 'e' of crane
		{"crane", "eerie", New(1, 1)},
		{"eerie", "crane", New(1, 1)},
		// the second 'a' of the guess finds nothing left to consume
		{"allot", "llama", New(2, 1)},
		// exact 's' at the end is not double-credited by the leading 's'
		{"ssass", "sxxxs", New(0, 2)},
		{"aabbb", "bbaaa", New(4, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.actual+"/"+tt.guess, func(t *testing.T) {
			got := Compute(NewWord(tt.actual), NewWord(tt.guess))
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid(5))
		})
	}
}

func TestCompute_SelfIsPerfect(t *testing.T) {
	for _, w := range []string{"plant", "areas", "eerie", "sssss", "ab"} {
		word := NewWord(w)
		assert.Equal(t, Perfect(word.Len()), Compute(word, word), w)
	}
}

func TestCompute_BoundsInvariant(t *testing.T) {
	words := []string{"plant", "areas", "donee", "sloth", "skint", "eerie", "llama", "allot", "sassy", "geese"}
	for _, a := range words {
		for _, b := range words {
			o := Compute(NewWord(a), NewWord(b))
			assert.LessOrEqual(t, int(o.RightPlace), 5)
			assert.LessOrEqual(t, int(o.WrongPlace), 5)
			assert.True(t, o.Valid(5), "%s/%s gave %s", a, b, o)
			assert.Less(t, o.Index(5), Buckets(5))
		}
	}
}

func TestCompute_DoesNotMutateInputs(t *testing.T) {
	a, b := NewWord("sloth"), NewWord("plant")
	_ = Compute(a, b)
	assert.Equal(t, "sloth", a.String())
	assert.Equal(t, "plant", b.String())
}

func TestCompute_LengthMismatchPanics(t *testing.T) {
	require.Panics(t, func() { Compute(NewWord("abc"), NewWord("abcd")) })
}

func TestOverlap_Index(t *testing.T) {
	assert.Equal(t, 0, New(0, 0).Index(5))
	assert.Equal(t, 1, New(1, 0).Index(5))
	assert.Equal(t, 7, New(2, 1).Index(5))
	assert.Equal(t, 25, Perfect(5).Index(5))
	assert.Equal(t, 26, Buckets(5))
	assert.False(t, New(3, 3).Valid(5))
}

// Aggregated counts agree with a letter-frequency scorer.
func TestCompute_MatchesFrequencyCount(t *testing.T) {
	words := []string{"plant", "areas", "donee", "sloth", "skint", "eerie", "llama", "allot", "sassy", "geese", "crane", "speed", "erase"}
	for _, a := range words {
		for _, b := range words {
			assert.Equal(t, frequencyCount(a, b), Compute(NewWord(a), NewWord(b)), "%s/%s", a, b)
		}
	}
}

func frequencyCount(actual, guess string) Overlap {
	var right, wrong uint8
	counts := map[byte]int{}
	for i := 0; i < len(guess); i++ {
		if actual[i] == guess[i] {
			right++
		} else {
			counts[actual[i]]++
		}
	}
	for i := 0; i < len(guess); i++ {
		if actual[i] != guess[i] && counts[guess[i]] > 0 {
			wrong++
			counts[guess[i]]--
		}
	}
	return New(wrong, right)
}

func BenchmarkCompute(b *testing.B) {
	actual, guess := NewWord("sloth"), NewWord("plant")
	for b.Loop() {
		Compute(actual, guess)
	}
}
