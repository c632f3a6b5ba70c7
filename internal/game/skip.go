package game

import (
	"context"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// SkipDecider decides whether a player sits out a round. It is consulted at
// most once per eligible player per round and may block, for example while
// waiting on a human at a terminal.
type SkipDecider interface {
	ShouldSkip(ctx context.Context, player, round int) (bool, error)
}

// DeciderFunc adapts a function to the SkipDecider interface
type DeciderFunc func(ctx context.Context, player, round int) (bool, error)

func (f DeciderFunc) ShouldSkip(ctx context.Context, player, round int) (bool, error) {
	return f(ctx, player, round)
}

// SkipFunc adapts a plain predicate over (player, round) to a SkipDecider
type SkipFunc func(player, round int) bool

func (f SkipFunc) ShouldSkip(_ context.Context, player, round int) (bool, error) {
	return f(player, round), nil
}

// NeverSkip always deals the player in
type NeverSkip struct{}

func (NeverSkip) ShouldSkip(context.Context, int, int) (bool, error) {
	return false, nil
}

// RandomSkipper skips with a fixed probability per decision
type RandomSkipper struct {
	rng         *rand.Rand
	probability float64
}

// NewRandomSkipper creates a skipper; probability is clamped to [0,1]
func NewRandomSkipper(rng *rand.Rand, probability float64) *RandomSkipper {
	return &RandomSkipper{
		rng:         rng,
		probability: min(max(probability, 0), 1),
	}
}

func (r *RandomSkipper) ShouldSkip(context.Context, int, int) (bool, error) {
	if r.probability == 0 {
		return false, nil
	}
	return r.rng.Float64() < r.probability, nil
}

// TimeoutDecider bounds how long an inner decider may take. A player who
// does not answer in time draws as normal.
type TimeoutDecider struct {
	inner   SkipDecider
	timeout time.Duration
	clock   quartz.Clock
	logger  *log.Logger
}

// NewTimeoutDecider wraps inner. A non-positive timeout waits indefinitely.
func NewTimeoutDecider(inner SkipDecider, timeout time.Duration, clock quartz.Clock, logger *log.Logger) *TimeoutDecider {
	return &TimeoutDecider{
		inner:   inner,
		timeout: timeout,
		clock:   clock,
		logger:  logger.WithPrefix("skip"),
	}
}

type skipAnswer struct {
	skip bool
	err  error
}

func (d *TimeoutDecider) ShouldSkip(ctx context.Context, player, round int) (bool, error) {
	if d.timeout <= 0 {
		return d.inner.ShouldSkip(ctx, player, round)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Arm the timer before asking so the deadline covers the whole decision
	timeoutFired := make(chan struct{})
	timer := d.clock.AfterFunc(d.timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	answers := make(chan skipAnswer, 1)
	go func() {
		skip, err := d.inner.ShouldSkip(ctx, player, round)
		answers <- skipAnswer{skip: skip, err: err}
	}()

	select {
	case a := <-answers:
		return a.skip, a.err
	case <-timeoutFired:
		d.logger.Warn("Skip decision timed out, dealing player in",
			"player", player+1,
			"round", round,
			"timeout", d.timeout)
		// The inner decider may own the terminal; let it release it before
		// the next decision starts.
		cancel()
		<-answers
		return false, nil
	case <-ctx.Done():
		<-answers
		return false, ctx.Err()
	}
}
