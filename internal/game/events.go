package game

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/lox/highcard/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeGameStart     EventType = "game_start"
	EventTypeRoundStart    EventType = "round_start"
	EventTypeCardDrawn     EventType = "card_drawn"
	EventTypePlayerSkipped EventType = "player_skipped"
	EventTypeRoundEnd      EventType = "round_end"
	EventTypeGameOver      EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// GameStartEvent is published once the deck is ready and before the first round
type GameStartEvent struct {
	GameID      string
	Players     int
	Cards       int
	SkipAllowed bool
	timestamp   time.Time
}

func (e GameStartEvent) EventType() EventType { return EventTypeGameStart }
func (e GameStartEvent) Timestamp() time.Time { return e.timestamp }

// NewGameStartEvent creates a new game start event
func NewGameStartEvent(gameID string, players, cards int, skipAllowed bool, at time.Time) GameStartEvent {
	return GameStartEvent{
		GameID:      gameID,
		Players:     players,
		Cards:       cards,
		SkipAllowed: skipAllowed,
		timestamp:   at,
	}
}

// RoundStartEvent is published when a full round is about to be dealt
type RoundStartEvent struct {
	Round          int
	CardsRemaining int
	timestamp      time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(round, cardsRemaining int, at time.Time) RoundStartEvent {
	return RoundStartEvent{
		Round:          round,
		CardsRemaining: cardsRemaining,
		timestamp:      at,
	}
}

// CardDrawnEvent is published when a player reveals their card
type CardDrawnEvent struct {
	Round     int
	Player    int
	Card      deck.Card
	Leading   bool // player shares the round's highest value after this draw
	timestamp time.Time
}

func (e CardDrawnEvent) EventType() EventType { return EventTypeCardDrawn }
func (e CardDrawnEvent) Timestamp() time.Time { return e.timestamp }

// NewCardDrawnEvent creates a new card drawn event
func NewCardDrawnEvent(round, player int, card deck.Card, leading bool, at time.Time) CardDrawnEvent {
	return CardDrawnEvent{
		Round:     round,
		Player:    player,
		Card:      card,
		Leading:   leading,
		timestamp: at,
	}
}

// PlayerSkippedEvent is published when a player sits out a round
type PlayerSkippedEvent struct {
	Round     int
	Player    int
	timestamp time.Time
}

func (e PlayerSkippedEvent) EventType() EventType { return EventTypePlayerSkipped }
func (e PlayerSkippedEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerSkippedEvent creates a new player skipped event
func NewPlayerSkippedEvent(round, player int, at time.Time) PlayerSkippedEvent {
	return PlayerSkippedEvent{Round: round, Player: player, timestamp: at}
}

// RoundEndEvent is published after the round's winners have been scored
type RoundEndEvent struct {
	Round     int
	Winners   []int
	HighCard  deck.Card
	Scores    []int // tally after this round
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundEndEvent creates a new round end event
func NewRoundEndEvent(round int, winners []int, highCard deck.Card, scores []int, at time.Time) RoundEndEvent {
	return RoundEndEvent{
		Round:     round,
		Winners:   slices.Clone(winners),
		HighCard:  highCard,
		Scores:    slices.Clone(scores),
		timestamp: at,
	}
}

// GameOverEvent is published when the deck can no longer supply a full round
type GameOverEvent struct {
	GameID    string
	Rounds    int
	CardsLeft int
	Scores    []int
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// NewGameOverEvent creates a new game over event
func NewGameOverEvent(gameID string, rounds, cardsLeft int, scores []int, at time.Time) GameOverEvent {
	return GameOverEvent{
		GameID:    gameID,
		Rounds:    rounds,
		CardsLeft: cardsLeft,
		Scores:    slices.Clone(scores),
		timestamp: at,
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to the EventSubscriber interface
type SubscriberFunc func(event GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. Delivery is synchronous,
// in subscription order, on the publishing goroutine.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// PlayerName returns the 1-based display name for a seat
func PlayerName(player int) string {
	return fmt.Sprintf("Player %d", player+1)
}

// EventFormatter renders events as plain narration lines
type EventFormatter struct{}

// NewEventFormatter creates a new event formatter
func NewEventFormatter() *EventFormatter {
	return &EventFormatter{}
}

// Format returns the narration line for an event, or "" for unknown events
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case GameStartEvent:
		return ef.FormatGameStart(e)
	case RoundStartEvent:
		return ef.FormatRoundStart(e)
	case CardDrawnEvent:
		return ef.FormatCardDrawn(e)
	case PlayerSkippedEvent:
		return ef.FormatPlayerSkipped(e)
	case RoundEndEvent:
		return ef.FormatRoundEnd(e)
	case GameOverEvent:
		return ef.FormatGameOver(e)
	default:
		return ""
	}
}

// FormatGameStart formats the deck announcement
func (ef *EventFormatter) FormatGameStart(e GameStartEvent) string {
	return fmt.Sprintf("Game prepped with: %d cards!", e.Cards)
}

// FormatRoundStart formats the round header
func (ef *EventFormatter) FormatRoundStart(e RoundStartEvent) string {
	return fmt.Sprintf("Round: %d", e.Round)
}

// FormatCardDrawn formats a reveal, suit first
func (ef *EventFormatter) FormatCardDrawn(e CardDrawnEvent) string {
	return fmt.Sprintf("%s draws: %s %s", PlayerName(e.Player), e.Card.Suit, e.Card.Rank)
}

// FormatPlayerSkipped formats a skipped draw
func (ef *EventFormatter) FormatPlayerSkipped(e PlayerSkippedEvent) string {
	return fmt.Sprintf("%s skips the round", PlayerName(e.Player))
}

// FormatRoundEnd lists the round winners
func (ef *EventFormatter) FormatRoundEnd(e RoundEndEvent) string {
	names := make([]string, len(e.Winners))
	for i, w := range e.Winners {
		names[i] = PlayerName(w)
	}
	return "Round winners: " + strings.Join(names, ", ")
}

// FormatGameOver summarises how the game ended
func (ef *EventFormatter) FormatGameOver(e GameOverEvent) string {
	rounds := plural(e.Rounds, "round")
	switch e.CardsLeft {
	case 0:
		return fmt.Sprintf("Game over after %s: the deck is empty", rounds)
	default:
		return fmt.Sprintf("Game over after %s: %s left, not enough for a round", rounds, plural(e.CardsLeft, "card"))
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
