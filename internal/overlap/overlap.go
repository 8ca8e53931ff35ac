// internal/overlap/overlap.go
//
// Feedback model for the clue finder.
// Defines:
//   - Word: an immutable fixed-length sequence of symbols.
//   - Overlap: the (right place, wrong place) count pair for one comparison.
//   - Index/Buckets: the mapping from an Overlap into a fixed tally array.
//
// Every producer of Overlap values must keep RightPlace+WrongPlace <= L.
package overlap

import "fmt"

// Word is an ordered, fixed-length sequence of symbols. Words are shared by
// reference across the solver and must never be mutated after creation.
type Word []rune

// NewWord builds a Word from s.
func NewWord(s string) Word { return Word([]rune(s)) }

func (w Word) String() string { return string(w) }

// Len returns the number of symbols in w.
func (w Word) Len() int { return len(w) }

// Equal reports whether w and o hold the same symbols.
func (w Word) Equal(o Word) bool {
	if len(w) != len(o) {
		return false
	}
	for i := range w {
		if w[i] != o[i] {
			return false
		}
	}
	return true
}

// Overlap is the feedback for one (actual, guess) comparison.
// The struct is two bytes wide so that dense tables stay compact.
type Overlap struct {
	RightPlace uint8 `json:"rightPlace"`
	WrongPlace uint8 `json:"wrongPlace"`
}

// New constructs an Overlap. The argument order (wrong, right) matches the
// order in which feedback is read from an operator.
func New(wrongPlace, rightPlace uint8) Overlap {
	return Overlap{RightPlace: rightPlace, WrongPlace: wrongPlace}
}

// Perfect is the overlap of a word of length l with itself.
func Perfect(l int) Overlap { return Overlap{RightPlace: uint8(l)} }

// Valid reports whether o is attainable for words of length l.
func (o Overlap) Valid(l int) bool {
	return int(o.RightPlace)+int(o.WrongPlace) <= l
}

// Index maps o to its tally slot for words of length l.
func (o Overlap) Index(l int) int {
	return int(o.RightPlace)*l + int(o.WrongPlace)
}

// Buckets is the tally size needed for words of length l.
// The largest index is the perfect match (l, 0) at l*l.
func Buckets(l int) int { return l*l + 1 }

func (o Overlap) String() string {
	return fmt.Sprintf("(wrong=%d, right=%d)", o.WrongPlace, o.RightPlace)
}
