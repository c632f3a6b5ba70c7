package main

import (
	"fmt"
	"os"

	"github.com/lox/highcard/internal/display"
	"github.com/lox/highcard/internal/randutil"
	"github.com/lox/highcard/internal/simulator"
)

// SimulateCmd plays many games without narration and reports per-seat statistics
type SimulateCmd struct {
	Games           int     `kong:"short='n',default='1000',help='Number of games to play'"`
	Players         int     `kong:"short='p',default='4',help='Number of players (minimum 4)'"`
	Decks           int     `kong:"short='d',default='1',help='Number of decks shuffled together'"`
	SkipProbability float64 `kong:"default='0',help='Chance a player after the first skips a round (0-1)'"`
	Seed            *int64  `kong:"help='Deterministic RNG seed (optional)'"`
	Workers         int     `kong:"short='w',default='0',help='Games played concurrently (0 uses all CPUs)'"`
	NoColor         bool    `kong:"help='Disable coloured output'"`
	Debug           bool    `kong:"help='Enable debug logging'"`
	LogFile         string  `kong:"default='-',help='Log file, or - for stderr'"`
}

func (c *SimulateCmd) Run() error {
	logger, closer, err := setupLogger(c.LogFile, "warn", c.Debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	seed, _ := randutil.Resolve(c.Seed)
	logger.Info("Starting simulation", "games", c.Games, "seed", seed)

	cfg := simulator.Config{
		Games:           c.Games,
		Players:         c.Players,
		Decks:           c.Decks,
		SkipProbability: c.SkipProbability,
		Seed:            seed,
		Workers:         c.Workers,
		Logger:          logger,
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid simulation: %s", setupMessage(err))
	}

	report, err := simulator.New(cfg).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	return display.RenderSummary(os.Stdout, report, !c.NoColor)
}
