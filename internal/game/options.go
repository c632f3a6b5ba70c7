package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// Option configures an Engine or Game
type Option func(*options)

type options struct {
	logger      *log.Logger
	bus         EventBus
	clock       quartz.Clock
	decider     SkipDecider
	skipAllowed bool
	gameID      string
}

func defaultOptions() options {
	return options{
		logger:  log.New(io.Discard),
		bus:     NewEventBus(),
		clock:   quartz.NewReal(),
		decider: NeverSkip{},
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for engine diagnostics
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithEventBus publishes game events on bus
func WithEventBus(bus EventBus) Option {
	return func(o *options) {
		if bus != nil {
			o.bus = bus
		}
	}
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithSkipDecider sets who answers skip questions without enabling skipping.
// A configured Game enables skipping from Config.SkipAllowed.
func WithSkipDecider(decider SkipDecider) Option {
	return func(o *options) {
		if decider != nil {
			o.decider = decider
		}
	}
}

// WithSkipping enables skipping for every player but the first and asks
// decider each round. A nil decider never skips.
func WithSkipping(decider SkipDecider) Option {
	return func(o *options) {
		o.skipAllowed = true
		if decider != nil {
			o.decider = decider
		}
	}
}

// WithGameID tags events and logs with id
func WithGameID(id string) Option {
	return func(o *options) {
		o.gameID = id
	}
}
