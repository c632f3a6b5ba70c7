package game

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/highcard/internal/deck"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// cards builds a deck from card values, for tests that only care about value
func cards(t *testing.T, values ...int) []deck.Card {
	t.Helper()
	out := make([]deck.Card, len(values))
	for i, v := range values {
		c, err := deck.CardFromValue(v)
		require.NoError(t, err)
		out[i] = c
	}
	return out
}

func TestRunGame(t *testing.T) {
	tests := []struct {
		name    string
		players int
		values  []int
		want    []int
	}{
		{name: "one player empty deck", players: 1, values: nil, want: []int{0}},
		{name: "four players empty deck", players: 4, values: nil, want: []int{0, 0, 0, 0}},
		{name: "eight players empty deck", players: 8, values: nil, want: make([]int, 8)},
		{name: "single card single player", players: 1, values: []int{4}, want: []int{1}},
		{name: "tie scores both", players: 2, values: []int{4, 4}, want: []int{1, 1}},
		{name: "high first card wins", players: 4, values: []int{52, 4, 4, 4}, want: []int{1, 0, 0, 0}},
		{name: "too few cards for one round", players: 8, values: []int{4}, want: make([]int, 8)},
		{
			name:    "two tied winners in one round",
			players: 8,
			values:  []int{1, 1, 52, 1, 1, 52, 1, 1},
			want:    []int{0, 0, 1, 0, 0, 1, 0, 0},
		},
		{
			name:    "four rounds of two",
			players: 2,
			values:  []int{1, 1, 52, 1, 1, 52, 1, 1},
			want:    []int{3, 3},
		},
		{
			name:    "leftover cards are not played",
			players: 3,
			values:  []int{10, 20, 30, 52, 51},
			want:    []int{0, 0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RunGame(context.Background(), tt.players, cards(t, tt.values...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunGameRejectsEmptyTable(t *testing.T) {
	scores, err := RunGame(context.Background(), 0, cards(t, 1, 2))
	assert.Nil(t, scores)
	assert.True(t, errors.Is(err, ErrInvalidPlayerCount))
}

func TestRunGameDoesNotModifyCards(t *testing.T) {
	input := cards(t, 5, 6, 7, 8)
	_, err := RunGame(context.Background(), 2, input)
	require.NoError(t, err)
	assert.Equal(t, cards(t, 5, 6, 7, 8), input)
}

func TestEngineStateMachine(t *testing.T) {
	e, err := NewEngine(2, deck.New(cards(t, 9, 3, 7)), WithLogger(quietLogger()))
	require.NoError(t, err)
	ctx := context.Background()

	assert.Equal(t, AwaitingRound, e.Phase())

	require.NoError(t, e.Step(ctx))
	assert.Equal(t, DealingPlayer, e.Phase())
	assert.Equal(t, 1, e.Round())

	require.NoError(t, e.Step(ctx))
	assert.Equal(t, DealingPlayer, e.Phase())
	assert.Equal(t, 2, e.CardsRemaining())

	require.NoError(t, e.Step(ctx))
	assert.Equal(t, RoundComplete, e.Phase())
	assert.Equal(t, []int{0, 0}, e.Scores(), "scores are committed when the round completes")

	require.NoError(t, e.Step(ctx))
	assert.Equal(t, AwaitingRound, e.Phase())
	assert.Equal(t, []int{1, 0}, e.Scores())

	// One card left for two players: no partial round
	require.NoError(t, e.Step(ctx))
	assert.Equal(t, GameOver, e.Phase())
	assert.Equal(t, 1, e.Round())
	assert.Equal(t, 1, e.CardsRemaining())

	// GameOver is terminal
	require.NoError(t, e.Step(ctx))
	assert.Equal(t, GameOver, e.Phase())
}

func TestScoresIsACopy(t *testing.T) {
	e, err := NewEngine(1, deck.New(cards(t, 1)))
	require.NoError(t, err)
	scores, err := e.Run(context.Background())
	require.NoError(t, err)
	scores[0] = 100
	assert.Equal(t, []int{1}, e.Scores())
}

func TestSkipping(t *testing.T) {
	t.Run("skipped player consumes no card", func(t *testing.T) {
		skipSecond := SkipFunc(func(player, round int) bool { return player == 1 })
		// Round 1: P0=10, P1 skips, P2=52. Round 2: P0=40, P1 skips, P2=5.
		// The last two cards cannot cover three seats.
		got, err := RunGame(context.Background(), 3, cards(t, 10, 52, 40, 5, 1, 2), WithSkipping(skipSecond))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 0, 1}, got)
	})

	t.Run("first player is never asked", func(t *testing.T) {
		var asked []int
		recordAll := SkipFunc(func(player, round int) bool {
			asked = append(asked, player)
			return true
		})
		got, err := RunGame(context.Background(), 3, cards(t, 1, 2, 3), WithSkipping(recordAll))
		require.NoError(t, err)
		assert.Equal(t, []int{1, 0, 0}, got, "everyone else skipped so the first player wins each round")
		assert.NotContains(t, asked, 0)
	})

	t.Run("decisions are per round", func(t *testing.T) {
		type ask struct{ player, round int }
		var asked []ask
		skipOddRounds := SkipFunc(func(player, round int) bool {
			asked = append(asked, ask{player, round})
			return round%2 == 1
		})
		// Round 1: P1 skips, P0 draws 1. Round 2: both draw (2, 52). Round 3: P1 skips, P0 draws 3.
		// Round 4 needs 2 cards but only 1 remains.
		got, err := RunGame(context.Background(), 2, cards(t, 1, 2, 52, 3, 4), WithSkipping(skipOddRounds))
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1}, got)
		assert.Equal(t, []ask{{1, 1}, {1, 2}, {1, 3}}, asked)
	})

	t.Run("deck check counts every seat even when players skip", func(t *testing.T) {
		skipAll := SkipFunc(func(int, int) bool { return true })
		got, err := RunGame(context.Background(), 4, cards(t, 7, 8, 9), WithSkipping(skipAll))
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0, 0}, got)
	})

	t.Run("decider ignored when skipping is disabled", func(t *testing.T) {
		skipAll := SkipFunc(func(int, int) bool { return true })
		got, err := RunGame(context.Background(), 2, cards(t, 1, 52), WithSkipDecider(skipAll))
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, got)
	})

	t.Run("decider error aborts with partial scores", func(t *testing.T) {
		boom := errors.New("terminal closed")
		failSecondRound := DeciderFunc(func(_ context.Context, player, round int) (bool, error) {
			if round == 2 {
				return false, boom
			}
			return false, nil
		})
		got, err := RunGame(context.Background(), 2, cards(t, 52, 1, 2, 3), WithSkipping(failSecondRound))
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "Player 2")
		assert.Equal(t, []int{1, 0}, got)
	})
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancelAfterFirstRound := SubscriberFunc(func(ev GameEvent) {
		if ev.EventType() == EventTypeRoundEnd {
			cancel()
		}
	})
	bus := NewEventBus()
	bus.Subscribe(cancelAfterFirstRound)

	got, err := RunGame(ctx, 2, cards(t, 1, 2, 3, 4), WithEventBus(bus))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{0, 1}, got)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "awaiting-round", AwaitingRound.String())
	assert.Equal(t, "dealing-player", DealingPlayer.String())
	assert.Equal(t, "round-complete", RoundComplete.String())
	assert.Equal(t, "game-over", GameOver.String())
	assert.Equal(t, "unknown", Phase(42).String())
}
