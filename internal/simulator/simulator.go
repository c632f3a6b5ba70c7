// Package simulator plays many independent games and aggregates the results.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/highcard/internal/game"
	"github.com/lox/highcard/internal/randutil"
	"github.com/lox/highcard/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Games           int
	Players         int
	Decks           int
	SkipProbability float64 // chance a player after the first sits out a round; 0 disables skipping
	Seed            int64
	Workers         int // concurrent games; 0 uses GOMAXPROCS
	Logger          *log.Logger
}

// Validate checks the batch parameters. Game setup rules are checked by
// the game package itself.
func (c Config) Validate() error {
	if c.Games < 1 {
		return fmt.Errorf("at least 1 game required, got %d", c.Games)
	}
	if c.SkipProbability < 0 || c.SkipProbability > 1 {
		return fmt.Errorf("skip probability must be between 0 and 1, got %v", c.SkipProbability)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return game.Config{Decks: c.Decks, Players: c.Players}.Validate()
}

// Report is the aggregated outcome of a simulation run
type Report struct {
	Config   Config
	Stats    *statistics.Statistics
	Duration time.Duration
}

// Simulator runs high card game simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	logger := config.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if config.Workers == 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	return &Simulator{
		config: config,
		logger: logger.WithPrefix("simulator"),
	}
}

// Run plays every game and returns the aggregate. Games run concurrently
// but each is seeded from its index, so a seed always yields the same report.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := range results {
		g.Go(func() error {
			result, err := s.playGame(ctx, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := statistics.New(s.config.Players)
	for _, r := range results {
		if err := stats.Add(r); err != nil {
			return nil, err
		}
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	report := &Report{
		Config:   s.config,
		Stats:    stats,
		Duration: time.Since(start),
	}
	s.logger.Info("Simulation complete",
		"games", stats.Games,
		"seed", s.config.Seed,
		"workers", s.config.Workers,
		"duration", report.Duration)
	return report, nil
}

// playGame plays the i-th game of the batch
func (s *Simulator) playGame(ctx context.Context, i int) (statistics.GameResult, error) {
	if err := ctx.Err(); err != nil {
		return statistics.GameResult{}, err
	}

	gameSeed := randutil.Derive(s.config.Seed, i)
	cfg := game.Config{
		Decks:       s.config.Decks,
		Players:     s.config.Players,
		SkipAllowed: s.config.SkipProbability > 0,
		Seed:        &gameSeed,
	}

	opts := []game.Option{
		game.WithLogger(s.logger),
		game.WithGameID(fmt.Sprintf("sim-%d", i+1)),
	}
	if cfg.SkipAllowed {
		skipRng := randutil.New(randutil.Derive(gameSeed, 0))
		opts = append(opts, game.WithSkipDecider(game.NewRandomSkipper(skipRng, s.config.SkipProbability)))
	}

	g, err := game.New(cfg, opts...)
	if err != nil {
		return statistics.GameResult{}, err
	}
	result, err := g.Play(ctx)
	if err != nil {
		return statistics.GameResult{}, err
	}

	s.logger.Debug("Game simulated", "game", i+1, "seed", gameSeed, "rounds", result.Rounds, "scores", result.Scores)

	return statistics.GameResult{
		Seed:      gameSeed,
		Rounds:    result.Rounds,
		CardsLeft: result.CardsLeft,
		Scores:    result.Scores,
	}, nil
}
