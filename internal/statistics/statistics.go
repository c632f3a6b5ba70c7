// Package statistics accumulates per-seat results over many simulated games.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/highcard/internal/game"
)

// GameResult is the outcome of a single game
type GameResult struct {
	Seed      int64 // Seed the deck was shuffled with (for replay)
	Rounds    int   // Rounds played before the deck ran out
	CardsLeft int   // Undealt cards at game over
	Scores    []int // Points per seat
}

// Sample tracks running moments of a single quantity
type Sample struct {
	N     int
	Sum   float64
	SumSq float64 // Sum of squares for variance calculation
}

// Add records one observation
func (s *Sample) Add(v float64) {
	s.N++
	s.Sum += v
	s.SumSq += v * v
}

// Mean returns the arithmetic mean
func (s Sample) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the sample variance
func (s Sample) Variance() float64 {
	if s.N < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumSq - float64(s.N)*mean*mean) / float64(s.N-1)
	if v < 0 {
		// rounding on constant samples
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation
func (s Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s Sample) StdError() float64 {
	if s.N == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.N))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// SeatStats tracks one seat across games
type SeatStats struct {
	Score      Sample
	Wins       int // Games won outright
	SharedWins int // Games where the top score was tied
}

// Statistics aggregates game results for a fixed number of seats
type Statistics struct {
	Games     int
	Rounds    Sample
	CardsLeft Sample
	Ties      int // Games with more than one player on the top score
	Scoreless int // Games where no round was won
	Seats     []SeatStats

	rounds []int // All round counts for median/percentile calculation
}

// New creates statistics for the given number of seats
func New(players int) *Statistics {
	return &Statistics{Seats: make([]SeatStats, players)}
}

// Add incorporates a game result
func (s *Statistics) Add(result GameResult) error {
	if len(result.Scores) != len(s.Seats) {
		return fmt.Errorf("result has %d scores, want %d", len(result.Scores), len(s.Seats))
	}

	s.Games++
	s.Rounds.Add(float64(result.Rounds))
	s.CardsLeft.Add(float64(result.CardsLeft))
	s.rounds = append(s.rounds, result.Rounds)

	for i, score := range result.Scores {
		s.Seats[i].Score.Add(float64(score))
	}

	winners := game.Leaders(result.Scores)
	switch len(winners) {
	case 0:
		s.Scoreless++
	case 1:
		s.Seats[winners[0]].Wins++
	default:
		s.Ties++
		for _, w := range winners {
			s.Seats[w].SharedWins++
		}
	}
	return nil
}

// Merge folds other into s. Both must track the same number of seats.
func (s *Statistics) Merge(other *Statistics) error {
	if len(other.Seats) != len(s.Seats) {
		return fmt.Errorf("cannot merge %d seats into %d", len(other.Seats), len(s.Seats))
	}
	s.Games += other.Games
	s.Ties += other.Ties
	s.Scoreless += other.Scoreless
	s.Rounds = mergeSample(s.Rounds, other.Rounds)
	s.CardsLeft = mergeSample(s.CardsLeft, other.CardsLeft)
	s.rounds = append(s.rounds, other.rounds...)
	for i := range s.Seats {
		s.Seats[i].Score = mergeSample(s.Seats[i].Score, other.Seats[i].Score)
		s.Seats[i].Wins += other.Seats[i].Wins
		s.Seats[i].SharedWins += other.Seats[i].SharedWins
	}
	return nil
}

func mergeSample(a, b Sample) Sample {
	return Sample{N: a.N + b.N, Sum: a.Sum + b.Sum, SumSq: a.SumSq + b.SumSq}
}

// WinShare returns the fraction of games a seat won outright
func (s *Statistics) WinShare(seat int) float64 {
	if s.Games == 0 || seat < 0 || seat >= len(s.Seats) {
		return 0
	}
	return float64(s.Seats[seat].Wins) / float64(s.Games)
}

// TieRate returns the fraction of games with a shared top score
func (s *Statistics) TieRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Ties) / float64(s.Games)
}

// MedianRounds returns the median number of rounds per game
func (s *Statistics) MedianRounds() float64 {
	return s.RoundsPercentile(0.5)
}

// RoundsPercentile returns the round count at the given percentile (0.0 to 1.0)
func (s *Statistics) RoundsPercentile(p float64) float64 {
	if len(s.rounds) == 0 {
		return 0
	}
	sorted := make([]int, len(s.rounds))
	copy(sorted, s.rounds)
	sort.Ints(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return float64(sorted[len(sorted)-1])
	}

	weight := index - float64(lower)
	return float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
}

// Validate checks the tallies are internally consistent
func (s *Statistics) Validate() error {
	wins := 0
	for i, seat := range s.Seats {
		if seat.Score.N != s.Games {
			return fmt.Errorf("seat %d has %d samples for %d games", i, seat.Score.N, s.Games)
		}
		wins += seat.Wins
	}
	if wins+s.Ties+s.Scoreless != s.Games {
		return fmt.Errorf("outcome mismatch: wins=%d ties=%d scoreless=%d games=%d",
			wins, s.Ties, s.Scoreless, s.Games)
	}
	return nil
}
