package game

import (
	"context"
	"fmt"

	"github.com/lox/highcard/internal/deck"
	"github.com/lox/highcard/internal/gameid"
	"github.com/lox/highcard/internal/randutil"
)

// Config describes a game to set up
type Config struct {
	Decks       int    // number of 52-card decks shuffled together
	Players     int    // seats at the table, at least MinPlayers
	SkipAllowed bool   // players after the first may sit out rounds
	Seed        *int64 // shuffle seed; nil picks one from the clock
}

// Validate checks the setup rules. Failures are fatal for the game and
// nothing is dealt.
func (c Config) Validate() error {
	if err := ValidateDecks(c.Decks); err != nil {
		return err
	}
	return ValidatePlayers(c.Players)
}

// ValidateDecks checks a deck count on its own, so a setup dialogue can
// reject it before asking anything else
func ValidateDecks(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDeckCount, n)
	}
	return nil
}

// ValidatePlayers checks a player count on its own
func ValidatePlayers(n int) error {
	if n < MinPlayers {
		return fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, n)
	}
	return nil
}

// Result is the outcome of a finished game
type Result struct {
	GameID    string
	Seed      int64
	Players   int
	Decks     int
	Rounds    int
	CardsLeft int
	Scores    []int
	Standings []Standing
}

// Game is a validated game with its shuffled deck, ready to play once
type Game struct {
	cfg    Config
	id     string
	seed   int64
	deck   *deck.Deck
	engine *Engine
}

// New validates cfg, shuffles the deck and prepares the engine
func New(cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(opts)
	seed, rng := randutil.Resolve(cfg.Seed)
	if o.gameID == "" {
		o.gameID = gameid.NewGenerator(o.clock, nil).Generate()
	}

	d, err := deck.NewShuffled(cfg.Decks, rng)
	if err != nil {
		return nil, err
	}

	engineOpts := []Option{
		WithLogger(o.logger),
		WithEventBus(o.bus),
		WithClock(o.clock),
		WithGameID(o.gameID),
	}
	if cfg.SkipAllowed {
		engineOpts = append(engineOpts, WithSkipping(o.decider))
	}
	engine, err := NewEngine(cfg.Players, d, engineOpts...)
	if err != nil {
		return nil, err
	}

	o.logger.WithPrefix("game").Info("Game prepared",
		"game", o.gameID,
		"seed", seed,
		"decks", cfg.Decks,
		"players", cfg.Players,
		"cards", d.Remaining(),
		"skip", cfg.SkipAllowed)

	return &Game{
		cfg:    cfg,
		id:     o.gameID,
		seed:   seed,
		deck:   d,
		engine: engine,
	}, nil
}

// ID returns the game identifier
func (g *Game) ID() string {
	return g.id
}

// Seed returns the seed the deck was shuffled with
func (g *Game) Seed() int64 {
	return g.seed
}

// Cards returns the undealt cards in dealing order
func (g *Game) Cards() []deck.Card {
	return g.deck.Cards()
}

// Play announces the game and runs it to completion. When ctx is cancelled
// or a skip decision fails the partial result is returned with the error.
func (g *Game) Play(ctx context.Context) (*Result, error) {
	e := g.engine
	e.eventBus.Publish(NewGameStartEvent(g.id, g.cfg.Players, e.CardsRemaining(), g.cfg.SkipAllowed, e.clock.Now()))

	scores, err := e.Run(ctx)
	result := &Result{
		GameID:    g.id,
		Seed:      g.seed,
		Players:   g.cfg.Players,
		Decks:     g.cfg.Decks,
		Rounds:    e.Round(),
		CardsLeft: e.CardsRemaining(),
		Scores:    scores,
		Standings: Standings(scores),
	}
	if err != nil {
		e.logger.Warn("Game stopped early", "rounds", result.Rounds, "error", err)
		return result, err
	}

	e.logger.Info("Game over", "rounds", result.Rounds, "cardsLeft", result.CardsLeft, "scores", scores)
	return result, nil
}
