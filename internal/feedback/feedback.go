// Package feedback provides the sources an elimination round reads its
// observed overlap from: a human at a terminal, or a hidden target word.
package feedback

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/clue"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/overlap"
)

// Target answers every clue by comparing it against a hidden word.
type Target struct {
	word overlap.Word
}

// NewTarget returns a Target for w.
func NewTarget(w overlap.Word) *Target { return &Target{word: w} }

// Observe returns Compute(target, clue), the same orientation the solver filters with,
// so the target is never eliminated.
func (t *Target) Observe(_ context.Context, c clue.Clue) (overlap.Overlap, error) {
	return overlap.Compute(t.word, c.Word), nil
}

// Prompt reads feedback line by line from an operator.
// Unparseable or impossible answers are re-prompted rather than aborting the solve.
type Prompt struct {
	sc     *bufio.Scanner
	out    io.Writer
	length int
}

// NewPrompt reads from r, writes prompts to w, and accepts counts for words of length l.
func NewPrompt(r io.Reader, w io.Writer, l int) *Prompt {
	return &Prompt{sc: bufio.NewScanner(r), out: w, length: l}
}

// Observe announces the clue and asks for the wrong-place then right-place counts.
func (p *Prompt) Observe(ctx context.Context, c clue.Clue) (overlap.Overlap, error) {
	fmt.Fprintf(p.out, "Best clue is: %s\n", c.Word)
	for {
		wrong, err := p.readCount(ctx, "Wrong place? :")
		if err != nil {
			return overlap.Overlap{}, err
		}
		right, err := p.readCount(ctx, "Right place? :")
		if err != nil {
			return overlap.Overlap{}, err
		}
		o := overlap.New(wrong, right)
		if o.Valid(p.length) {
			return o, nil
		}
		fmt.Fprintf(p.out, "wrong place + right place cannot exceed %d, try again\n", p.length)
	}
}

func (p *Prompt) readCount(ctx context.Context, prompt string) (uint8, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		fmt.Fprintln(p.out, prompt)
		if !p.sc.Scan() {
			if err := p.sc.Err(); err != nil {
				return 0, fmt.Errorf("read feedback: %w", err)
			}
			return 0, fmt.Errorf("read feedback: %w", io.ErrUnexpectedEOF)
		}
		n, err := strconv.ParseUint(strings.TrimSpace(p.sc.Text()), 10, 8)
		if err != nil || int(n) > p.length {
			fmt.Fprintf(p.out, "please enter a number from 0 to %d\n", p.length)
			continue
		}
		return uint8(n), nil
	}
}
