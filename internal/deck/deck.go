package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/lox/highcard/internal/randutil"
)

// Size is the number of cards in one canonical deck
const Size = 52

// ErrInvalidDeckCount is returned when fewer than one deck is requested
var ErrInvalidDeckCount = errors.New("minimum of 1 deck required")

// Generate returns the canonical 52-card sequence, ordered by value
func Generate() []Card {
	cards := make([]Card, 0, Size)
	for _, rank := range Ranks {
		for _, suit := range Suits {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// BuildMulti concatenates numDecks canonical decks. Cards are not
// deduplicated, so every card appears numDecks times.
func BuildMulti(numDecks int) ([]Card, error) {
	if numDecks <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDeckCount, numDecks)
	}
	cards := make([]Card, 0, numDecks*Size)
	for i := 0; i < numDecks; i++ {
		cards = append(cards, Generate()...)
	}
	return cards, nil
}

// Shuffle returns a uniformly random permutation of cards using Fisher-Yates.
// The input slice is left untouched. A nil rng uses a time-seeded source.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	if rng == nil {
		rng = randutil.New(time.Now().UnixNano())
	}
	shuffled := make([]Card, len(cards))
	copy(shuffled, cards)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Deck is a sequence of cards dealt from the front. It is never reshuffled
// once play starts.
type Deck struct {
	cards []Card
}

// New creates a deck over a copy of cards, preserving their order
func New(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// NewShuffled builds numDecks canonical decks and shuffles them together
func NewShuffled(numDecks int, rng *rand.Rand) (*Deck, error) {
	cards, err := BuildMulti(numDecks)
	if err != nil {
		return nil, err
	}
	return &Deck{cards: Shuffle(cards, rng)}, nil
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the undealt cards in dealing order
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
