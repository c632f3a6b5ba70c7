package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/highcard/internal/deck"
	"github.com/lox/highcard/internal/round"
)

// Phase is a state of the game loop
type Phase int

const (
	AwaitingRound Phase = iota
	DealingPlayer
	RoundComplete
	GameOver
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case AwaitingRound:
		return "awaiting-round"
	case DealingPlayer:
		return "dealing-player"
	case RoundComplete:
		return "round-complete"
	case GameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Engine runs the round loop over a deck it owns exclusively. It is not
// safe for concurrent use.
type Engine struct {
	numPlayers  int
	deck        *deck.Deck
	skipAllowed bool
	decider     SkipDecider
	logger      *log.Logger
	eventBus    EventBus
	clock       quartz.Clock
	gameID      string

	phase  Phase
	round  int
	player int // seat being dealt while in DealingPlayer
	state  round.State
	scores []int
}

// NewEngine creates an engine for numPlayers seats dealing from d
func NewEngine(numPlayers int, d *deck.Deck, opts ...Option) (*Engine, error) {
	if numPlayers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, numPlayers)
	}
	o := applyOptions(opts)

	logger := o.logger.WithPrefix("game")
	if o.gameID != "" {
		logger = logger.With("game", o.gameID)
	}

	return &Engine{
		numPlayers:  numPlayers,
		deck:        d,
		skipAllowed: o.skipAllowed,
		decider:     o.decider,
		logger:      logger,
		eventBus:    o.bus,
		clock:       o.clock,
		gameID:      o.gameID,
		phase:       AwaitingRound,
		scores:      make([]int, numPlayers),
	}, nil
}

// RunGame plays every full round cards can supply to numPlayers and returns
// the per-player scores. The cards are dealt from the front in order; the
// caller's slice is not modified.
func RunGame(ctx context.Context, numPlayers int, cards []deck.Card, opts ...Option) ([]int, error) {
	e, err := NewEngine(numPlayers, deck.New(cards), opts...)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx)
}

// Run steps the engine until the game is over. On error or cancellation the
// scores of the rounds completed so far are returned with the error.
func (e *Engine) Run(ctx context.Context) ([]int, error) {
	for e.phase != GameOver {
		if err := ctx.Err(); err != nil {
			return e.Scores(), err
		}
		if err := e.Step(ctx); err != nil {
			return e.Scores(), err
		}
	}
	return e.Scores(), nil
}

// Step performs a single state transition
func (e *Engine) Step(ctx context.Context) error {
	switch e.phase {
	case AwaitingRound:
		e.startRound()
	case DealingPlayer:
		if err := e.dealPlayer(ctx); err != nil {
			return err
		}
	case RoundComplete:
		e.completeRound()
	case GameOver:
	}
	return nil
}

func (e *Engine) startRound() {
	remaining := e.deck.Remaining()
	if remaining < e.numPlayers {
		e.phase = GameOver
		e.logger.Debug("Not enough cards for a full round",
			"remaining", remaining,
			"players", e.numPlayers,
			"rounds", e.round)
		e.eventBus.Publish(NewGameOverEvent(e.gameID, e.round, remaining, e.scores, e.clock.Now()))
		return
	}

	e.round++
	e.state = round.State{}
	e.player = 0
	e.phase = DealingPlayer

	e.logger.Debug("Starting round", "round", e.round, "remaining", remaining)
	e.eventBus.Publish(NewRoundStartEvent(e.round, remaining, e.clock.Now()))
}

func (e *Engine) dealPlayer(ctx context.Context) error {
	p := e.player

	skip := false
	if p > 0 && e.skipAllowed {
		var err error
		skip, err = e.decider.ShouldSkip(ctx, p, e.round)
		if err != nil {
			return fmt.Errorf("skip decision for %s in round %d: %w", PlayerName(p), e.round, err)
		}
	}

	if skip {
		e.logger.Debug("Player skipped", "player", p+1, "round", e.round)
		e.eventBus.Publish(NewPlayerSkippedEvent(e.round, p, e.clock.Now()))
	} else {
		c, ok := e.deck.Deal()
		if !ok {
			// startRound guarantees a card for every seat
			return fmt.Errorf("deck exhausted dealing %s in round %d", PlayerName(p), e.round)
		}
		e.state = e.state.Observe(p, c)
		e.logger.Debug("Card drawn", "player", p+1, "card", c, "value", c.Value)
		e.eventBus.Publish(NewCardDrawnEvent(e.round, p, c, e.state.IsLeader(p), e.clock.Now()))
	}

	e.player++
	if e.player == e.numPlayers {
		e.phase = RoundComplete
	}
	return nil
}

func (e *Engine) completeRound() {
	winners := e.state.Winners()
	for _, w := range winners {
		e.scores[w]++
	}
	high, _ := e.state.HighCard()

	e.logger.Debug("Round complete", "round", e.round, "winners", winners, "high", high)
	e.eventBus.Publish(NewRoundEndEvent(e.round, winners, high, e.scores, e.clock.Now()))

	e.state = round.State{}
	e.phase = AwaitingRound
}

// Phase returns the current state of the loop
func (e *Engine) Phase() Phase {
	return e.phase
}

// Round returns the number of rounds started so far
func (e *Engine) Round() int {
	return e.round
}

// Scores returns a copy of the current tally
func (e *Engine) Scores() []int {
	return slices.Clone(e.scores)
}

// CardsRemaining returns how many cards are still in the deck
func (e *Engine) CardsRemaining() int {
	return e.deck.Remaining()
}
