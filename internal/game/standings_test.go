package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandings(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   []Standing
	}{
		{
			name:   "distinct scores",
			scores: []int{2, 5, 1},
			want: []Standing{
				{Place: 1, Player: 1, Score: 5},
				{Place: 2, Player: 0, Score: 2},
				{Place: 3, Player: 2, Score: 1},
			},
		},
		{
			name:   "ties share a place",
			scores: []int{3, 7, 7, 3, 1},
			want: []Standing{
				{Place: 1, Player: 1, Score: 7},
				{Place: 1, Player: 2, Score: 7},
				{Place: 3, Player: 0, Score: 3},
				{Place: 3, Player: 3, Score: 3},
				{Place: 5, Player: 4, Score: 1},
			},
		},
		{
			name:   "nobody scored",
			scores: []int{0, 0},
			want: []Standing{
				{Place: 1, Player: 0, Score: 0},
				{Place: 1, Player: 1, Score: 0},
			},
		},
		{
			name:   "empty",
			scores: nil,
			want:   []Standing{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Standings(tt.scores))
		})
	}
}

func TestLeaders(t *testing.T) {
	assert.Equal(t, []int{1, 2}, Leaders([]int{3, 7, 7, 3}))
	assert.Equal(t, []int{0}, Leaders([]int{1}))
	assert.Nil(t, Leaders([]int{0, 0, 0}))
	assert.Nil(t, Leaders(nil))
}
