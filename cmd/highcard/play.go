package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/highcard/internal/config"
	"github.com/lox/highcard/internal/display"
	"github.com/lox/highcard/internal/game"
	"github.com/lox/highcard/internal/randutil"
	"github.com/lox/highcard/internal/record"
	"github.com/lox/highcard/internal/tui"
)

// PlayCmd plays a single game. Flags given explicitly override the config file.
type PlayCmd struct {
	Config          string   `kong:"short='c',default='highcard.hcl',help='HCL config file (missing file means defaults)'"`
	Decks           *int     `kong:"short='d',help='Number of decks shuffled together'"`
	Players         *int     `kong:"short='p',help='Number of players (minimum 4)'"`
	Skip            bool     `kong:"help='Allow players after the first to skip rounds'"`
	SkipProbability *float64 `kong:"help='Chance an automatic player skips a round (0-1)'"`
	SkipTimeout     *string  `kong:"help='How long to wait for a skip answer, e.g. 30s (0 waits forever)'"`
	Seed            *int64   `kong:"help='Deterministic shuffle seed (optional)'"`
	Interactive     bool     `kong:"short='i',help='Ask for setup and skip decisions at the terminal'"`
	Record          string   `kong:"help='Write a JSON record of the game to this file'"`
	NoColor         bool     `kong:"help='Disable coloured output'"`
	Quiet           bool     `kong:"short='q',help='Only print the final scoreboard'"`
	Debug           bool     `kong:"help='Enable debug logging'"`
	LogFile         *string  `kong:"help='Log file, or - for stderr'"`
}

// applyTo overrides cfg with every flag that was given
func (c *PlayCmd) applyTo(cfg *config.Config) {
	if c.Decks != nil {
		cfg.Game.Decks = *c.Decks
	}
	if c.Players != nil {
		cfg.Game.Players = *c.Players
	}
	if c.Skip {
		cfg.Game.SkipAllowed = true
	}
	if c.SkipProbability != nil {
		cfg.Game.SkipProbability = *c.SkipProbability
	}
	if c.SkipTimeout != nil {
		cfg.Game.SkipTimeout = *c.SkipTimeout
	}
	if c.Seed != nil {
		seed := *c.Seed
		cfg.Game.Seed = &seed
	}
	if c.NoColor {
		off := false
		cfg.Display.Color = &off
	}
	if c.Quiet {
		off := false
		cfg.Display.Narrate = &off
	}
	if c.Debug {
		cfg.Log.Level = "debug"
	}
	if c.LogFile != nil {
		cfg.Log.File = *c.LogFile
	}
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.applyTo(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closer, err := setupLogger(cfg.Log.File, cfg.Log.Level, c.Debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	var prompter *tui.Prompter
	if c.Interactive {
		prompter = tui.NewPrompter(os.Stdin, os.Stdout, logger)
		if err := c.askSetup(ctx, prompter, cfg); err != nil {
			if errors.Is(err, tui.ErrCancelled) {
				fmt.Println("Goodbye!")
				return nil
			}
			return err
		}
	}

	gameCfg, err := gameConfig(cfg)
	if err != nil {
		logger.Error("Invalid game setup", "error", err)
		return err
	}

	decider, err := skipDecider(cfg, prompter, *gameCfg.Seed, logger)
	if err != nil {
		return err
	}

	return playGame(ctx, os.Stdout, gameCfg, decider, cfg.ColorEnabled(), cfg.NarrationEnabled(), c.Record, logger)
}

// askSetup prompts for anything not fixed by a flag
func (c *PlayCmd) askSetup(ctx context.Context, p *tui.Prompter, cfg *config.Config) error {
	if c.Decks == nil {
		n, err := p.AskInt(ctx, "Enter number of decks:")
		if err != nil {
			return err
		}
		if err := game.ValidateDecks(n); err != nil {
			return errors.New(setupMessage(err))
		}
		cfg.Game.Decks = n
	}
	if c.Players == nil {
		n, err := p.AskInt(ctx, fmt.Sprintf("Enter number of players (min. %d):", game.MinPlayers))
		if err != nil {
			return err
		}
		if err := game.ValidatePlayers(n); err != nil {
			return errors.New(setupMessage(err))
		}
		cfg.Game.Players = n
	}
	if !c.Skip {
		skip, err := p.AskYesNo(ctx, "Allow players to skip rounds? (y/N)")
		if err != nil {
			return err
		}
		cfg.Game.SkipAllowed = skip
	}
	return nil
}

// gameConfig resolves the seed and checks the setup rules, reporting a
// failure with the message shown to the player
func gameConfig(cfg *config.Config) (game.Config, error) {
	seed, _ := randutil.Resolve(cfg.Game.Seed)
	gameCfg := game.Config{
		Decks:       cfg.Game.Decks,
		Players:     cfg.Game.Players,
		SkipAllowed: cfg.Game.SkipAllowed,
		Seed:        &seed,
	}
	if err := gameCfg.Validate(); err != nil {
		return game.Config{}, errors.New(setupMessage(err))
	}
	return gameCfg, nil
}

// skipDecider picks who answers skip questions: the terminal when
// interactive, otherwise a seeded random skipper
func skipDecider(cfg *config.Config, prompter *tui.Prompter, seed int64, logger *log.Logger) (game.SkipDecider, error) {
	if prompter == nil {
		rng := randutil.New(randutil.Derive(seed, 0))
		return game.NewRandomSkipper(rng, cfg.Game.SkipProbability), nil
	}

	timeout, err := cfg.SkipTimeout()
	if err != nil {
		return nil, err
	}
	return game.NewTimeoutDecider(prompter.SkipDecider(), timeout, quartz.NewReal(), logger), nil
}

// playGame runs one game, narrating to out and rendering the scoreboard.
// A stopped game still shows the partial scores.
func playGame(ctx context.Context, out io.Writer, cfg game.Config, decider game.SkipDecider, color, narrate bool, recordFile string, logger *log.Logger) error {
	bus := game.NewEventBus()
	if narrate {
		bus.Subscribe(display.NewNarrator(out, color))
	}
	var recorder *record.Recorder
	if recordFile != "" {
		recorder = record.NewRecorder()
		bus.Subscribe(recorder)
	}

	g, err := game.New(cfg,
		game.WithLogger(logger),
		game.WithEventBus(bus),
		game.WithSkipDecider(decider),
	)
	if err != nil {
		return errors.New(setupMessage(err))
	}

	result, playErr := g.Play(ctx)
	if result != nil {
		if err := display.NewScoreboard(out, color).Render(result); err != nil {
			return err
		}
	}

	if recorder != nil {
		if err := recorder.Finish(result).Save(recordFile); err != nil {
			return err
		}
		logger.Info("Game record written", "file", recordFile)
	}

	if playErr != nil {
		return fmt.Errorf("game stopped after %d rounds: %w", result.Rounds, playErr)
	}
	return nil
}

// setupMessage turns a setup error into the message shown to the player
func setupMessage(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidDeckCount):
		return "Minimum of 1 deck required."
	case errors.Is(err, game.ErrInvalidPlayerCount):
		return fmt.Sprintf("Minimum of %d players required.", game.MinPlayers)
	default:
		return err.Error()
	}
}
