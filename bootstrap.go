package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/cluefinder/internal/clue"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/config"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/matrix"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/solver"
	"github.com/robalobadob/wordle/apps/cluefinder/internal/words"
)

// buildSolver loads the corpus, builds the overlap table and wires the scorer.
func buildSolver(ctx context.Context, c config.Config) (*solver.Solver, error) {
	ws, err := words.Load(ctx, words.Source{
		DB:     c.WordsDB,
		Table:  c.WordsTable,
		File:   c.WordsFile,
		Length: c.WordLength,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int("words", len(ws)).Int("length", ws[0].Len()).Msg("corpus loaded")

	var table clue.Table
	if c.Precompute {
		start := time.Now()
		m, err := matrix.Build(ctx, ws, c.Workers)
		if err != nil {
			return nil, err
		}
		log.Info().
			Int("entries", m.Len()*m.Len()).
			Int("bytes", m.SizeBytes()).
			Dur("elapsed", time.Since(start)).
			Msg("overlap matrix built")
		table = m
	} else {
		d, err := matrix.NewDirect(ws)
		if err != nil {
			return nil, err
		}
		table = d
	}

	opts, err := c.ScorerOptions()
	if err != nil {
		return nil, err
	}
	scorer := clue.NewScorer(table, opts)
	log.Info().
		Stringer("objective", opts.Objective).
		Stringer("universe", opts.Universe).
		Int("workers", scorer.Options().Workers).
		Msg("scorer ready")
	return solver.New(table, scorer, log.Logger), nil
}
