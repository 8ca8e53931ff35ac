// internal/words/db.go
//
// SQLite corpus source.
// Responsibilities:
//   - Opening SQLite databases with safe defaults (busy timeout, WAL).
//   - Reading a corpus from a table with a `word` column, in rowid order.
//   - Importing a word list into such a table.

package words

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/overlap"
)

const defaultTable = "words"

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// OpenDB opens (and creates if missing) a SQLite database file.
// The parent directory is created for relative paths such as ./data/words.db.
func OpenDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	return db, nil
}

func tableName(t string) (string, error) {
	if t == "" {
		return defaultTable, nil
	}
	if !identRe.MatchString(t) {
		return "", fmt.Errorf("invalid table name %q", t)
	}
	return t, nil
}

// LoadDB reads the corpus from table in the database at dsn.
func LoadDB(ctx context.Context, dsn, table string, length int) ([]overlap.Word, error) {
	table, err := tableName(table)
	if err != nil {
		return nil, err
	}
	db, err := OpenDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("open corpus db: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT word FROM `+table+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	b := newBuilder(length)
	row := 0
	for rows.Next() {
		row++
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", table, row, err)
		}
		if err := b.add(w, row); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return b.result()
}

// Import writes ws into table, creating it if needed. Existing rows are replaced
// so that rowid order matches the order of ws.
func Import(ctx context.Context, dsn, table string, ws []overlap.Word) error {
	table, err := tableName(table)
	if err != nil {
		return err
	}
	db, err := OpenDB(dsn)
	if err != nil {
		return fmt.Errorf("open corpus db: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+table+` (word TEXT NOT NULL)`); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+table+` (word) VALUES (?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, w := range ws {
		if _, err := stmt.ExecContext(ctx, w.String()); err != nil {
			return fmt.Errorf("insert %q: %w", w, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	log.Info().Str("table", table).Int("words", len(ws)).Msg("corpus imported")
	return nil
}
