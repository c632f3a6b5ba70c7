package game

import (
	"errors"

	"github.com/lox/highcard/internal/deck"
)

// MinPlayers is the smallest table a configured game accepts
const MinPlayers = 4

var (
	// ErrInvalidPlayerCount is returned when a game is set up with too few players
	ErrInvalidPlayerCount = errors.New("minimum of 4 players required")

	// ErrInvalidDeckCount is returned when a game is set up with fewer than one deck
	ErrInvalidDeckCount = deck.ErrInvalidDeckCount
)
