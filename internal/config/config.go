// Package config loads highcard settings from an HCL file.
//
//	game {
//	  decks            = 2
//	  players          = 6
//	  skip_allowed     = true
//	  skip_probability = 0.25
//	  skip_timeout     = "30s"
//	  seed             = 42
//	}
//
//	log {
//	  level = "debug"
//	  file  = "highcard.log"
//	}
//
//	display {
//	  color   = false
//	  narrate = true
//	}
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete configuration
type Config struct {
	Game    GameSettings    `hcl:"game,block"`
	Log     LogSettings     `hcl:"log,block"`
	Display DisplaySettings `hcl:"display,block"`
}

// GameSettings contains the table setup
type GameSettings struct {
	Decks           int     `hcl:"decks,optional"`
	Players         int     `hcl:"players,optional"`
	SkipAllowed     bool    `hcl:"skip_allowed,optional"`
	SkipProbability float64 `hcl:"skip_probability,optional"`
	SkipTimeout     string  `hcl:"skip_timeout,optional"`
	Seed            *int64  `hcl:"seed,optional"`
}

// LogSettings contains logging settings
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// DisplaySettings contains terminal output settings
type DisplaySettings struct {
	Color   *bool `hcl:"color,optional"`
	Narrate *bool `hcl:"narrate,optional"`
}

// file mirrors Config with every block optional so partial files decode
type file struct {
	Game    *gameFile        `hcl:"game,block"`
	Log     *LogSettings     `hcl:"log,block"`
	Display *DisplaySettings `hcl:"display,block"`
}

// gameFile distinguishes an absent count from an explicit zero, which
// must reach game setup and fail there
type gameFile struct {
	Decks           *int    `hcl:"decks,optional"`
	Players         *int    `hcl:"players,optional"`
	SkipAllowed     bool    `hcl:"skip_allowed,optional"`
	SkipProbability float64 `hcl:"skip_probability,optional"`
	SkipTimeout     string  `hcl:"skip_timeout,optional"`
	Seed            *int64  `hcl:"seed,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			Decks:       1,
			Players:     4,
			SkipTimeout: "0s",
		},
		Log: LogSettings{
			Level: "info",
			File:  "highcard.log",
		},
		Display: DisplaySettings{
			Color:   boolPtr(true),
			Narrate: boolPtr(true),
		},
	}
}

func boolPtr(b bool) *bool { return &b }

// Load reads configuration from an HCL file. A missing file yields the
// defaults; values absent from the file keep their defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source read from filename
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return merge(Default(), raw), nil
}

func merge(cfg *Config, raw file) *Config {
	if g := raw.Game; g != nil {
		if g.Decks != nil {
			cfg.Game.Decks = *g.Decks
		}
		if g.Players != nil {
			cfg.Game.Players = *g.Players
		}
		cfg.Game.SkipAllowed = g.SkipAllowed
		cfg.Game.SkipProbability = g.SkipProbability
		if g.SkipTimeout != "" {
			cfg.Game.SkipTimeout = g.SkipTimeout
		}
		if g.Seed != nil {
			cfg.Game.Seed = g.Seed
		}
	}

	if l := raw.Log; l != nil {
		if l.Level != "" {
			cfg.Log.Level = l.Level
		}
		if l.File != "" {
			cfg.Log.File = l.File
		}
	}

	if d := raw.Display; d != nil {
		if d.Color != nil {
			cfg.Display.Color = d.Color
		}
		if d.Narrate != nil {
			cfg.Display.Narrate = d.Narrate
		}
	}

	return cfg
}

// Validate validates the configuration. Deck and player minimums are left
// to game setup so they are reported with the game's own errors.
func (c *Config) Validate() error {
	if c.Game.SkipProbability < 0 || c.Game.SkipProbability > 1 {
		return fmt.Errorf("skip probability must be between 0 and 1, got %v", c.Game.SkipProbability)
	}

	if _, err := c.SkipTimeout(); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// SkipTimeout returns the parsed skip decision timeout
func (c *Config) SkipTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Game.SkipTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid skip timeout %q: %w", c.Game.SkipTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("skip timeout cannot be negative: %s", d)
	}
	return d, nil
}

// ColorEnabled reports whether narration should be coloured
func (c *Config) ColorEnabled() bool {
	return c.Display.Color == nil || *c.Display.Color
}

// NarrationEnabled reports whether round by round narration is printed
func (c *Config) NarrationEnabled() bool {
	return c.Display.Narrate == nil || *c.Display.Narrate
}
