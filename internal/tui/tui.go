// Package tui asks the player questions at the terminal using Bubble Tea.
package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the player aborts a prompt with esc or ctrl+c
var ErrCancelled = errors.New("prompt cancelled")

// PromptModel is a single line question answered with enter
type PromptModel struct {
	question string
	input    textinput.Model
	validate func(string) error

	err       error
	answer    string
	done      bool
	cancelled bool
}

// NewPromptModel creates a prompt. validate may be nil; when it rejects an
// answer the error is shown and the player may type again.
func NewPromptModel(question, placeholder string, validate func(string) error) PromptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 16
	ti.Width = 20
	ti.PromptStyle = PromptStyle
	ti.TextStyle = InputStyle
	ti.Prompt = "> "

	if validate == nil {
		validate = func(string) error { return nil }
	}

	return PromptModel{
		question: question,
		input:    ti,
		validate: validate,
	}
}

// Init initializes the prompt
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			answer := strings.TrimSpace(m.input.Value())
			if err := m.validate(answer); err != nil {
				m.err = err
				m.input.SetValue("")
				return m, nil
			}
			m.err = nil
			m.answer = answer
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt
func (m PromptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(QuestionStyle.Render(m.question))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render("enter to confirm, esc to quit"))
	b.WriteString("\n")
	return b.String()
}

// Answer returns the accepted answer and whether one was given
func (m PromptModel) Answer() (string, bool) {
	return m.answer, m.done
}

// Cancelled reports whether the player aborted the prompt
func (m PromptModel) Cancelled() bool {
	return m.cancelled
}

// Err returns the validation error for the last rejected answer
func (m PromptModel) Err() error {
	return m.err
}
