// Package record captures a played game from its events and exports it as JSON.
package record

import (
	"fmt"
	"slices"
	"time"

	"github.com/lox/highcard/internal/deck"
	"github.com/lox/highcard/internal/fileutil"
	"github.com/lox/highcard/internal/game"
)

// Card is a card as written to a record
type Card struct {
	Card  string `json:"card"`
	Value int    `json:"value"`
}

func newCard(c deck.Card) Card {
	return Card{Card: c.String(), Value: c.Value}
}

// Draw is one revealed card. Players are numbered from 1.
type Draw struct {
	Player int  `json:"player"`
	Card   Card `json:"card"`
}

// Round is everything that happened in a single round
type Round struct {
	Number   int    `json:"number"`
	Draws    []Draw `json:"draws"`
	Skipped  []int  `json:"skipped,omitempty"`
	Winners  []int  `json:"winners"`
	HighCard Card   `json:"high_card"`
}

// Standing is a player's final place
type Standing struct {
	Place  int `json:"place"`
	Player int `json:"player"`
	Score  int `json:"score"`
}

// Game is the exported record of one game
type Game struct {
	GameID      string     `json:"game_id"`
	Seed        int64      `json:"seed"`
	Decks       int        `json:"decks"`
	Players     int        `json:"players"`
	Cards       int        `json:"cards"`
	SkipAllowed bool       `json:"skip_allowed"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  time.Time  `json:"finished_at,omitzero"`
	Complete    bool       `json:"complete"`
	Rounds      []Round    `json:"rounds"`
	CardsLeft   int        `json:"cards_left"`
	Scores      []int      `json:"scores"`
	Standings   []Standing `json:"standings"`
}

// Recorder subscribes to a game's events and builds its record
type Recorder struct {
	game    Game
	current *Round
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.GameStartEvent:
		r.game.GameID = e.GameID
		r.game.Players = e.Players
		r.game.Cards = e.Cards
		r.game.SkipAllowed = e.SkipAllowed
		r.game.StartedAt = e.Timestamp()
	case game.RoundStartEvent:
		r.current = &Round{Number: e.Round, Draws: []Draw{}}
	case game.CardDrawnEvent:
		if r.current != nil {
			r.current.Draws = append(r.current.Draws, Draw{Player: e.Player + 1, Card: newCard(e.Card)})
		}
	case game.PlayerSkippedEvent:
		if r.current != nil {
			r.current.Skipped = append(r.current.Skipped, e.Player+1)
		}
	case game.RoundEndEvent:
		if r.current == nil {
			return
		}
		r.current.Winners = seats(e.Winners)
		r.current.HighCard = newCard(e.HighCard)
		r.game.Rounds = append(r.game.Rounds, *r.current)
		r.current = nil
	case game.GameOverEvent:
		r.game.Complete = true
		r.game.FinishedAt = e.Timestamp()
		r.game.CardsLeft = e.CardsLeft
		r.game.Scores = slices.Clone(e.Scores)
	}
}

// Finish completes the record with the game result. A round still being
// dealt when the game stopped is left out.
func (r *Recorder) Finish(result *game.Result) *Game {
	g := r.game
	g.Rounds = slices.Clone(r.game.Rounds)
	if g.Rounds == nil {
		g.Rounds = []Round{}
	}
	if result != nil {
		g.GameID = result.GameID
		g.Seed = result.Seed
		g.Decks = result.Decks
		g.Players = result.Players
		g.CardsLeft = result.CardsLeft
		g.Scores = slices.Clone(result.Scores)
		g.Standings = make([]Standing, len(result.Standings))
		for i, s := range result.Standings {
			g.Standings[i] = Standing{Place: s.Place, Player: s.Player + 1, Score: s.Score}
		}
	}
	return &g
}

// Save writes the record to filename as JSON, replacing it atomically
func (g *Game) Save(filename string) error {
	if err := fileutil.WriteJSONAtomic(filename, g, 0o644); err != nil {
		return fmt.Errorf("write game record %s: %w", filename, err)
	}
	return nil
}

func seats(players []int) []int {
	out := make([]int, len(players))
	for i, p := range players {
		out[i] = p + 1
	}
	return out
}
