// internal/words/words.go
//
// Corpus loading for the clue finder.
//
// Responsibilities:
//   - Parse a line-oriented word list into overlap.Words of one shared length.
//   - Load the corpus from a SQLite table, a file, or the embedded default.
//
// Load order (Load):
//   1. If Source.DB is set, read words from that SQLite database.
//   2. Else if Source.File is set, read that file.
//   3. Else fall back to the embedded reference corpus in assets/.
//
// Constraints:
//   • Lines are trimmed and lowercased; blank lines and '#' comments are skipped.
//   • Every word must decode as UTF-8 and have the same length.
//   • Duplicates are dropped, keeping the first occurrence, since two identical
//     words can never be told apart by feedback.

package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/cluefinder/assets"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/overlap"
)

var (
	// ErrEmpty is returned when a source yields no words.
	ErrEmpty = errors.New("words: corpus is empty")
	// ErrLengthMismatch is returned when a word's length differs from the corpus length.
	ErrLengthMismatch = errors.New("words: length mismatch")
	// ErrEncoding is returned for lines that are not valid UTF-8.
	ErrEncoding = errors.New("words: invalid encoding")
)

// Source describes where to load a corpus from.
type Source struct {
	DB     string // SQLite DSN
	Table  string // table holding a `word` column; defaults to "words"
	File   string // one word per line
	Length int    // required word length; 0 infers it from the first word
}

// Load reads the corpus from the first configured source.
func Load(ctx context.Context, src Source) ([]overlap.Word, error) {
	switch {
	case src.DB != "":
		log.Info().Str("db", src.DB).Str("table", src.Table).Msg("loading corpus from sqlite")
		return LoadDB(ctx, src.DB, src.Table, src.Length)
	case src.File != "":
		log.Info().Str("file", src.File).Msg("loading corpus from file")
		return LoadFile(src.File, src.Length)
	default:
		log.Info().Msg("loading embedded corpus")
		return Embedded(src.Length)
	}
}

// LoadFile parses the word list at path.
func LoadFile(path string, length int) ([]overlap.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()
	return Parse(f, length)
}

// Embedded parses the reference corpus compiled into the binary.
func Embedded(length int) ([]overlap.Word, error) {
	f, err := assets.Corpus()
	if err != nil {
		return nil, fmt.Errorf("open embedded corpus: %w", err)
	}
	defer f.Close()
	return Parse(f, length)
}

// Parse reads one word per line from r.
func Parse(r io.Reader, length int) ([]overlap.Word, error) {
	b := newBuilder(length)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if err := b.add(sc.Text(), line); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return b.result()
}

// builder accumulates validated, de-duplicated words.
type builder struct {
	length int
	seen   map[string]struct{}
	out    []overlap.Word
}

func newBuilder(length int) *builder {
	return &builder{length: length, seen: make(map[string]struct{})}
}

func (b *builder) add(raw string, line int) error {
	if !utf8.ValidString(raw) {
		return fmt.Errorf("%w: line %d", ErrEncoding, line)
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || strings.HasPrefix(s, "#") {
		return nil
	}
	w := overlap.NewWord(s)
	if b.length == 0 {
		b.length = w.Len()
	}
	if w.Len() != b.length {
		return fmt.Errorf("%w: line %d %q has %d symbols, want %d", ErrLengthMismatch, line, s, w.Len(), b.length)
	}
	if _, dup := b.seen[s]; dup {
		log.Debug().Str("word", s).Int("line", line).Msg("duplicate word skipped")
		return nil
	}
	b.seen[s] = struct{}{}
	b.out = append(b.out, w)
	return nil
}

func (b *builder) result() ([]overlap.Word, error) {
	if len(b.out) == 0 {
		return nil, ErrEmpty
	}
	return b.out, nil
}

// Strings converts words back to strings, e.g. for display.
func Strings(ws []overlap.Word) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.String()
	}
	return out
}
