// internal/config/config.go
//
// Runtime configuration for the clue finder.
//
// Precedence (lowest to highest):
//   1. Defaults below.
//   2. Optional YAML file (path passed to Load).
//   3. Environment variables, including a `.env` file loaded by godotenv.
//   4. Command-line flags (applied by the caller).
//
// Environment variables:
//   WORDS_FILE, WORDS_DB, WORDS_TABLE, WORD_LENGTH      corpus source
//   OBJECTIVE (largest-bucket|variance), UNIVERSE (corpus|candidates)
//   WORKERS, PRECOMPUTE                                 scan parallelism / matrix
//   PORT, CLIENT_ORIGIN, REQUEST_TIMEOUT, AUTH_JWT_SECRET, DAILY_SALT   server
//   LOG_LEVEL

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/clue"
)

// Config is the full set of tunables.
type Config struct {
	WordsFile  string `yaml:"words_file"`
	WordsDB    string `yaml:"words_db"`
	WordsTable string `yaml:"words_table"`
	WordLength int    `yaml:"word_length"`

	Objective  string `yaml:"objective"`
	Universe   string `yaml:"universe"`
	Workers    int    `yaml:"workers"`
	Precompute bool   `yaml:"precompute"`

	Port           string        `yaml:"port"`
	ClientOrigin   string        `yaml:"client_origin"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	JWTSecret      string        `yaml:"auth_jwt_secret"`
	DailySalt      string        `yaml:"daily_salt"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		WordsTable:     "words",
		Objective:      clue.MinimiseLargestBucket.String(),
		Universe:       clue.UniverseCorpus.String(),
		Precompute:     true,
		Port:           "5175",
		ClientOrigin:   "http://localhost:5173",
		RequestTimeout: 30 * time.Second,
		DailySalt:      "local_dev_salt",
		LogLevel:       "info",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when empty)
// and the environment.
func Load(path string) (Config, error) {
	_ = godotenv.Load()
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.WordsFile = getEnv("WORDS_FILE", c.WordsFile)
	c.WordsDB = getEnv("WORDS_DB", c.WordsDB)
	c.WordsTable = getEnv("WORDS_TABLE", c.WordsTable)
	c.Objective = getEnv("OBJECTIVE", c.Objective)
	c.Universe = getEnv("UNIVERSE", c.Universe)
	c.Port = getEnv("PORT", c.Port)
	c.ClientOrigin = getEnv("CLIENT_ORIGIN", c.ClientOrigin)
	c.JWTSecret = getEnv("AUTH_JWT_SECRET", c.JWTSecret)
	c.DailySalt = getEnv("DAILY_SALT", c.DailySalt)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	var err error
	if c.WordLength, err = envInt("WORD_LENGTH", c.WordLength); err != nil {
		return err
	}
	if c.Workers, err = envInt("WORKERS", c.Workers); err != nil {
		return err
	}
	if v := os.Getenv("PRECOMPUTE"); v != "" {
		if c.Precompute, err = strconv.ParseBool(v); err != nil {
			return fmt.Errorf("PRECOMPUTE: %w", err)
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if c.RequestTimeout, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("REQUEST_TIMEOUT: %w", err)
		}
	}
	return nil
}

// Validate checks values that would otherwise fail deep inside the solver.
func (c Config) Validate() error {
	if _, err := clue.ParseObjective(c.Objective); err != nil {
		return err
	}
	if _, err := clue.ParseUniverse(c.Universe); err != nil {
		return err
	}
	if c.WordLength < 0 {
		return fmt.Errorf("word length must not be negative, got %d", c.WordLength)
	}
	return nil
}

// ScorerOptions converts the scoring fields into clue.Options.
func (c Config) ScorerOptions() (clue.Options, error) {
	obj, err := clue.ParseObjective(c.Objective)
	if err != nil {
		return clue.Options{}, err
	}
	uni, err := clue.ParseUniverse(c.Universe)
	if err != nil {
		return clue.Options{}, err
	}
	return clue.Options{Objective: obj, Universe: uni, Workers: c.Workers}, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return n, nil
}
