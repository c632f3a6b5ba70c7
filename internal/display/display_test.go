package display

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/highcard/internal/deck"
	"github.com/lox/highcard/internal/game"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func TestNarratorRendersGame(t *testing.T) {
	var buf bytes.Buffer
	bus := game.NewEventBus()
	bus.Subscribe(NewNarrator(&buf, false))

	skipThird := game.SkipFunc(func(player, round int) bool { return player == 2 })
	_, err := game.RunGame(context.Background(), 3,
		deck.MustParseCards("K♠ K♠ 5♥ 2♣"),
		game.WithEventBus(bus), game.WithSkipping(skipThird), game.WithClock(quartz.NewMock(t)))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(plain(buf.String()), "\n"), "\n")
	assert.Equal(t, []string{
		"Round: 1",
		separator,
		"Player 1 draws: ♠ K *",
		"Player 2 draws: ♠ K *",
		"Player 3 skips the round",
		"Round winners: Player 1, Player 2",
		separator,
		"Game over after 1 round: 2 cards left, not enough for a round",
	}, lines)
}

func TestNarratorGameStart(t *testing.T) {
	var buf bytes.Buffer
	n := NewNarrator(&buf, false)
	n.OnEvent(game.NewGameStartEvent("id", 4, 52, false, quartz.NewMock(t).Now()))

	out := plain(buf.String())
	assert.Contains(t, out, "High Card")
	assert.Contains(t, out, "Game prepped with: 52 cards!")
	assert.Contains(t, out, separator)
}

func TestNarratorMarksOnlyLeaders(t *testing.T) {
	var buf bytes.Buffer
	n := NewNarrator(&buf, false)
	now := quartz.NewMock(t).Now()
	n.OnEvent(game.NewCardDrawnEvent(1, 1, deck.NewCard(deck.Clubs, deck.Two), false, now))

	assert.Equal(t, "Player 2 draws: ♣ 2\n", plain(buf.String()))
}

func TestScoreboardTable(t *testing.T) {
	sb := NewScoreboard(&bytes.Buffer{}, false)
	table, err := sb.Table(game.Standings([]int{2, 5, 5, 0}))
	require.NoError(t, err)

	table = plain(table)
	for _, want := range []string{"Place", "Player", "Points", "Player 2", "Player 3", "Player 1", "Player 4"} {
		assert.Contains(t, table, want)
	}
	assert.Less(t, strings.Index(table, "Player 2"), strings.Index(table, "Player 1"), "higher scores are listed first")
	assert.Less(t, strings.Index(table, "Player 1"), strings.Index(table, "Player 4"))
}

func TestScoreboardRender(t *testing.T) {
	var buf bytes.Buffer
	scores := []int{1, 4, 2, 0}
	err := NewScoreboard(&buf, false).Render(&game.Result{Scores: scores, Standings: game.Standings(scores)})
	require.NoError(t, err)

	out := plain(buf.String())
	assert.Contains(t, out, "Final scores")
	assert.Contains(t, out, "Winner: Player 2 with 4 points")
}

func TestWinnerLine(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   string
	}{
		{name: "single winner", scores: []int{3, 1, 0, 0}, want: "Winner: Player 1 with 3 points"},
		{name: "one point", scores: []int{0, 1, 0, 0}, want: "Winner: Player 2 with 1 point"},
		{name: "tie", scores: []int{2, 5, 5, 1}, want: "Tied winners: Player 2, Player 3 with 5 points each"},
		{name: "nobody scored", scores: []int{0, 0, 0, 0}, want: "No rounds were won"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WinnerLine(tt.scores))
		})
	}
}
