package game

import (
	"cmp"
	"slices"
)

// Standing is one line of the final scoreboard
type Standing struct {
	Place  int // 1-based; tied scores share a place
	Player int // 0-based seat
	Score  int
}

// Standings ranks players by score, highest first. Equal scores share a
// place and the next place skips accordingly (1, 1, 3). Ties are listed in
// seat order.
func Standings(scores []int) []Standing {
	out := make([]Standing, len(scores))
	for i, s := range scores {
		out[i] = Standing{Player: i, Score: s}
	}
	slices.SortStableFunc(out, func(a, b Standing) int {
		return cmp.Compare(b.Score, a.Score)
	})
	for i := range out {
		if i > 0 && out[i].Score == out[i-1].Score {
			out[i].Place = out[i-1].Place
		} else {
			out[i].Place = i + 1
		}
	}
	return out
}

// Leaders returns the players sharing the top score. An empty tally or one
// where nobody scored has no leaders.
func Leaders(scores []int) []int {
	best := 0
	for _, s := range scores {
		best = max(best, s)
	}
	if best == 0 {
		return nil
	}
	var leaders []int
	for i, s := range scores {
		if s == best {
			leaders = append(leaders, i)
		}
	}
	return leaders
}
