package overlap

import "fmt"

// consumed marks a symbol of the working copy that has already been credited.
const consumed rune = 0

// Compute returns the feedback for guessing guess when the answer is actual.
//
// Pass 1 credits exact positions and consumes them. Pass 2 walks the remaining
// guess positions in order and credits the first unconsumed symbol of actual
// that matches, skipping positions where the working symbol already equals the
// guess symbol at that position. The result depends on position order and is
// not the symmetric multiset count some Wordle scorers use.
//
// Compute panics if the two words differ in length.
func Compute(actual, guess Word) Overlap {
	if len(actual) != len(guess) {
		panic(fmt.Sprintf("overlap: length mismatch %d != %d", len(actual), len(guess)))
	}
	work := make([]rune, len(actual))
	copy(work, actual)

	var right, wrong uint8
	exact := make([]bool, len(guess))
	for j := range guess {
		if actual[j] == guess[j] {
			right++
			work[j] = consumed
			exact[j] = true
		}
	}

	for j := range guess {
		if exact[j] {
			continue
		}
		for i := range work {
			if work[i] != consumed && guess[j] == work[i] && work[i] != guess[i] {
				wrong++
				work[i] = consumed
				break
			}
		}
	}
	return New(wrong, right)
}
