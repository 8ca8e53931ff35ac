// cli.go
//
// Command-line entry points.
//   - play:   interactive solve, feedback typed at the terminal.
//   - solve:  automated solve against hidden words (arguments or a corpus index range).
//   - serve:  HTTP API.
//   - import: copy a word list into a SQLite corpus table.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/clue"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/config"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/feedback"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/httpserver"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/overlap"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/solver"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/store"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/words"
)

var (
	cfg        config.Config
	configPath string

	rootCmd = &cobra.Command{
		Use:           "cluefinder",
		Short:         "Finds the most discriminating next guess for a Wordle-style game",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			if err := applyFlags(cmd); err != nil {
				return err
			}
			return setupLogging(cfg.LogLevel)
		},
	}
	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Suggest clues and read feedback from the terminal until one word remains",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
	solveCmd = &cobra.Command{
		Use:   "solve [target...]",
		Short: "Simulate games against hidden targets and print the clue sequence",
		RunE:  runSolve,
	}
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	importCmd = &cobra.Command{
		Use:   "import <words-file>",
		Short: "Import a word list into the SQLite corpus table given by --db",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}

	solveFrom, solveTo int
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.String("words", "", "word list file (one word per line)")
	pf.String("db", "", "SQLite database holding the corpus")
	pf.String("table", "", "corpus table name")
	pf.Int("length", 0, "word length (0 infers it from the corpus)")
	pf.String("objective", "", "clue objective: largest-bucket | variance")
	pf.String("universe", "", "words each clue is tallied against: corpus | candidates")
	pf.Int("workers", 0, "parallel scan workers (0 = number of CPUs)")
	pf.Bool("precompute", true, "precompute the pairwise overlap matrix")
	pf.String("log-level", "", "log level (debug, info, warn, error)")

	serveCmd.Flags().String("port", "", "listen port")
	solveCmd.Flags().IntVar(&solveFrom, "from", 0, "first corpus index to use as a target")
	solveCmd.Flags().IntVar(&solveTo, "to", 0, "end (exclusive) of the corpus index range")

	rootCmd.AddCommand(playCmd, solveCmd, serveCmd, importCmd)
}

// applyFlags overrides cfg with flags the user set explicitly.
func applyFlags(cmd *cobra.Command) error {
	fs := cmd.Flags()
	str := map[string]*string{
		"words": &cfg.WordsFile, "db": &cfg.WordsDB, "table": &cfg.WordsTable,
		"objective": &cfg.Objective, "universe": &cfg.Universe,
		"log-level": &cfg.LogLevel, "port": &cfg.Port,
	}
	for name, dst := range str {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	var err error
	if fs.Changed("length") {
		if cfg.WordLength, err = fs.GetInt("length"); err != nil {
			return err
		}
	}
	if fs.Changed("workers") {
		if cfg.Workers, err = fs.GetInt("workers"); err != nil {
			return err
		}
	}
	if fs.Changed("precompute") {
		if cfg.Precompute, err = fs.GetBool("precompute"); err != nil {
			return err
		}
	}
	return cfg.Validate()
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	return nil
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd)
	defer cancel()

	sv, err := buildSolver(ctx, cfg)
	if err != nil {
		return err
	}
	sess := sv.NewSession(solver.ModeInteractive)
	prompt := feedback.NewPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), sv.Table().WordLen())
	final, err := sv.Run(ctx, sess, prompt)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Answer is: %v\n", words.Strings(final))
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd)
	defer cancel()

	sv, err := buildSolver(ctx, cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	start := time.Now()

	if len(args) == 0 {
		if !cmd.Flags().Changed("to") {
			return errors.New("give target words or a --from/--to corpus range")
		}
		results, err := sv.SolveRange(ctx, solveFrom, solveTo)
		for _, r := range results {
			fmt.Fprintf(out, "%s: %s\n", r.Target, formatClues(r.Clues))
		}
		if err != nil {
			return err
		}
	}
	for _, a := range args {
		target := overlap.NewWord(strings.ToLower(strings.TrimSpace(a)))
		clues, err := sv.SolveAuto(ctx, target)
		fmt.Fprintf(out, "%s: %s\n", target, formatClues(clues))
		if err != nil {
			return err
		}
	}
	log.Info().Dur("elapsed", time.Since(start)).Msg("solve finished")
	return nil
}

// formatClues renders clues as "word (value), word (value)".
func formatClues(clues []clue.Clue) string {
	parts := make([]string, len(clues))
	for i, c := range clues {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd)
	defer cancel()

	sv, err := buildSolver(ctx, cfg)
	if err != nil {
		return err
	}
	srv := httpserver.New(sv, store.NewMemoryStore(), httpserver.Options{
		ClientOrigin:   cfg.ClientOrigin,
		RequestTimeout: cfg.RequestTimeout,
		JWTSecret:      cfg.JWTSecret,
		DailySalt:      cfg.DailySalt,
	})
	log.Info().Str("port", cfg.Port).Bool("auth", cfg.JWTSecret != "").Msg("starting cluefinder server")
	return srv.Start(":" + cfg.Port)
}

func runImport(cmd *cobra.Command, args []string) error {
	if cfg.WordsDB == "" {
		return errors.New("import needs --db or WORDS_DB")
	}
	ws, err := words.LoadFile(args[0], cfg.WordLength)
	if err != nil {
		return err
	}
	return words.Import(cmd.Context(), cfg.WordsDB, cfg.WordsTable, ws)
}
