package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m PromptModel, s string) PromptModel {
	t.Helper()
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	pm, ok := updated.(PromptModel)
	require.True(t, ok)
	return pm
}

func press(t *testing.T, m PromptModel, key tea.KeyType) (PromptModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: key})
	pm, ok := updated.(PromptModel)
	require.True(t, ok)
	return pm, cmd
}

func TestPromptModel(t *testing.T) {
	t.Run("enter accepts a valid answer", func(t *testing.T) {
		m := NewPromptModel("Enter number of decks:", "number", ValidateInt)
		m = typeText(t, m, "2")

		m, cmd := press(t, m, tea.KeyEnter)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())

		answer, ok := m.Answer()
		assert.True(t, ok)
		assert.Equal(t, "2", answer)
		assert.Empty(t, m.View())
	})

	t.Run("invalid answer shows error and clears input", func(t *testing.T) {
		m := NewPromptModel("Enter number of players (min. 4):", "number", ValidateInt)
		m = typeText(t, m, "four")

		m, cmd := press(t, m, tea.KeyEnter)
		assert.Nil(t, cmd)
		_, ok := m.Answer()
		assert.False(t, ok)
		require.Error(t, m.Err())
		assert.Contains(t, m.View(), "not a whole number")

		m = typeText(t, m, "6")
		m, _ = press(t, m, tea.KeyEnter)
		answer, ok := m.Answer()
		assert.True(t, ok)
		assert.Equal(t, "6", answer)
		assert.NoError(t, m.Err())
	})

	t.Run("answers are trimmed", func(t *testing.T) {
		m := NewPromptModel("q", "", nil)
		m = typeText(t, m, "  y ")
		m, _ = press(t, m, tea.KeyEnter)
		answer, _ := m.Answer()
		assert.Equal(t, "y", answer)
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := NewPromptModel("q", "", nil)
		m, cmd := press(t, m, tea.KeyEsc)
		require.NotNil(t, cmd)
		assert.True(t, m.Cancelled())
		_, ok := m.Answer()
		assert.False(t, ok)
	})

	t.Run("ctrl+c cancels", func(t *testing.T) {
		m := NewPromptModel("q", "", nil)
		m, _ = press(t, m, tea.KeyCtrlC)
		assert.True(t, m.Cancelled())
	})

	t.Run("view shows the question", func(t *testing.T) {
		m := NewPromptModel("Enter number of decks:", "number", nil)
		assert.Contains(t, m.View(), "Enter number of decks:")
	})
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{input: "y", want: true},
		{input: "YES", want: true},
		{input: " Yes ", want: true},
		{input: "n"},
		{input: "No"},
		{input: ""},
		{input: "maybe", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseYesNo(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateInt(t *testing.T) {
	assert.NoError(t, ValidateInt("4"))
	assert.NoError(t, ValidateInt("-1"), "range checks belong to game setup")
	assert.Error(t, ValidateInt(""))
	assert.Error(t, ValidateInt("2.5"))
	assert.Error(t, ValidateInt("two"))
}
