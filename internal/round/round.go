// Package round tracks the running leaders of a single high-card round.
//
// State is an immutable value: Observe returns a new State and never
// modifies the receiver, so the zero value can be reused as the start of
// every round.
package round

import (
	"slices"

	"github.com/lox/highcard/internal/deck"
)

// State holds the highest card seen so far in a round and the players
// currently tied on it.
type State struct {
	high    deck.Card
	hasHigh bool
	leaders []int
}

// Observe records that player drew c and returns the resulting state.
//
// A draw equal in value to the current high card joins the leader set. A
// higher draw replaces it. The first draw of a round always leads.
func (s State) Observe(player int, c deck.Card) State {
	switch {
	case !s.hasHigh:
		return State{high: c, hasHigh: true, leaders: []int{player}}
	case c.Value == s.high.Value:
		leaders := make([]int, len(s.leaders), len(s.leaders)+1)
		copy(leaders, s.leaders)
		return State{high: s.high, hasHigh: true, leaders: append(leaders, player)}
	case c.Beats(s.high):
		return State{high: c, hasHigh: true, leaders: []int{player}}
	default:
		return s
	}
}

// Winners returns the players holding the round's highest value, in draw order
func (s State) Winners() []int {
	return slices.Clone(s.leaders)
}

// HighCard returns the first card drawn at the current maximum value
func (s State) HighCard() (deck.Card, bool) {
	return s.high, s.hasHigh
}

// IsLeader reports whether player currently shares the maximum
func (s State) IsLeader(player int) bool {
	return slices.Contains(s.leaders, player)
}
