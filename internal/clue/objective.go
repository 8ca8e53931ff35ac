package clue

import (
	"fmt"
	"strings"
)

// Objective reduces a bucket tally to a score. Lower is better for every objective.
type Objective int

const (
	// MinimiseLargestBucket scores a clue by its worst-case bucket size.
	MinimiseLargestBucket Objective = iota
	// MinimiseVariance scores a clue by the sum of squared deviations from the mean bucket.
	MinimiseVariance
)

func (o Objective) String() string {
	switch o {
	case MinimiseLargestBucket:
		return "largest-bucket"
	case MinimiseVariance:
		return "variance"
	}
	return fmt.Sprintf("objective(%d)", int(o))
}

// ParseObjective accepts the names produced by String.
func ParseObjective(s string) (Objective, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "largest-bucket", "max":
		return MinimiseLargestBucket, nil
	case "variance":
		return MinimiseVariance, nil
	}
	return 0, fmt.Errorf("unknown objective %q", s)
}

func (o Objective) reduce(tally []int) int {
	switch o {
	case MinimiseVariance:
		sum := 0
		for _, v := range tally {
			sum += v
		}
		mean := sum / len(tally)
		out := 0
		for _, v := range tally {
			d := v - mean
			out += d * d
		}
		return out
	default:
		largest := 0
		for _, v := range tally {
			largest = max(largest, v)
		}
		return largest
	}
}

// Universe selects which words a clue's feedback is tallied against.
type Universe int

const (
	// UniverseCorpus tallies against every word of the original corpus.
	UniverseCorpus Universe = iota
	// UniverseCandidates tallies against the surviving candidates only.
	UniverseCandidates
)

func (u Universe) String() string {
	switch u {
	case UniverseCorpus:
		return "corpus"
	case UniverseCandidates:
		return "candidates"
	}
	return fmt.Sprintf("universe(%d)", int(u))
}

// ParseUniverse accepts the names produced by String.
func ParseUniverse(s string) (Universe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "corpus":
		return UniverseCorpus, nil
	case "candidates":
		return UniverseCandidates, nil
	}
	return 0, fmt.Errorf("unknown universe %q", s)
}
