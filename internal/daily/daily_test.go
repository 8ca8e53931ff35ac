package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	assert.Equal(t, "2026-10-18", DateKey(time.Date(2026, 10, 19, 5, 0, 0, 0, loc)))
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	a := WordIndex(day, "salt", 500)
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 500)
	assert.Equal(t, a, WordIndex(day.Add(time.Hour), "salt", 500), "same day, same index")
	assert.Equal(t, 0, WordIndex(day, "salt", 0))

	seen := map[int]bool{}
	for d := range 30 {
		seen[WordIndex(day.AddDate(0, 0, d), "salt", 500)] = true
	}
	assert.Greater(t, len(seen), 1)
}
