package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/clue"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir()) // no stray .env
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	opts, err := cfg.ScorerOptions()
	require.NoError(t, err)
	assert.Equal(t, clue.MinimiseLargestBucket, opts.Objective)
	assert.Equal(t, clue.UniverseCorpus, opts.Universe)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "cluefinder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
words_file: /tmp/words.txt
objective: variance
workers: 3
precompute: false
request_timeout: 5s
port: "9000"
`), 0o644))

	t.Setenv("PORT", "7000")
	t.Setenv("UNIVERSE", "candidates")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/words.txt", cfg.WordsFile)
	assert.Equal(t, "variance", cfg.Objective)
	assert.Equal(t, "candidates", cfg.Universe)
	assert.Equal(t, 3, cfg.Workers)
	assert.False(t, cfg.Precompute)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "7000", cfg.Port)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DAILY_SALT=from_dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DAILY_SALT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", cfg.DailySalt)
}

func TestLoad_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("bad objective", func(t *testing.T) {
		t.Setenv("OBJECTIVE", "entropy")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("bad workers", func(t *testing.T) {
		t.Setenv("WORKERS", "many")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Load("does-not-exist.yaml")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
