package tui

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/highcard/internal/game"
)

// Prompter runs prompts as short-lived Bubble Tea programs
type Prompter struct {
	in     io.Reader
	out    io.Writer
	logger *log.Logger
}

// NewPrompter creates a prompter reading from in and drawing to out
func NewPrompter(in io.Reader, out io.Writer, logger *log.Logger) *Prompter {
	return &Prompter{
		in:     in,
		out:    out,
		logger: logger.WithPrefix("tui"),
	}
}

// Ask shows a question and blocks until it is answered, cancelled or ctx ends
func (p *Prompter) Ask(ctx context.Context, question, placeholder string, validate func(string) error) (string, error) {
	program := tea.NewProgram(
		NewPromptModel(question, placeholder, validate),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	m, ok := final.(PromptModel)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", final)
	}
	if m.Cancelled() {
		return "", ErrCancelled
	}
	answer, _ := m.Answer()
	p.logger.Debug("Prompt answered", "question", question, "answer", answer)
	return answer, nil
}

// AskInt asks for a whole number. Range checks are left to the caller.
func (p *Prompter) AskInt(ctx context.Context, question string) (int, error) {
	answer, err := p.Ask(ctx, question, "number", ValidateInt)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(answer)
}

// AskYesNo asks a yes/no question; an empty answer means no
func (p *Prompter) AskYesNo(ctx context.Context, question string) (bool, error) {
	answer, err := p.Ask(ctx, question, "y/N", ValidateYesNo)
	if err != nil {
		return false, err
	}
	return ParseYesNo(answer)
}

// SkipDecider asks each eligible player whether they sit the round out
func (p *Prompter) SkipDecider() game.SkipDecider {
	return game.DeciderFunc(func(ctx context.Context, player, round int) (bool, error) {
		return p.AskYesNo(ctx, fmt.Sprintf("%s, skip round %d? (y/N)", game.PlayerName(player), round))
	})
}

// ValidateInt accepts an optionally signed whole number
func ValidateInt(s string) error {
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("%q is not a whole number", s)
	}
	return nil
}

// ValidateYesNo accepts the answers understood by ParseYesNo
func ValidateYesNo(s string) error {
	_, err := ParseYesNo(s)
	return err
}

// ParseYesNo interprets y/yes/n/no in any case; empty means no
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "", "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("please answer y or n, got %q", s)
	}
}
