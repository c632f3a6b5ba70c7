// Package display renders game events and the final scoreboard for a terminal.
package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/highcard/internal/game"
)

// Narrator prints a line per game event as the game is played
type Narrator struct {
	out       io.Writer
	formatter *game.EventFormatter
	styles    styles
}

// NewNarrator creates a narrator writing to out. With color disabled the
// output is plain text regardless of the terminal.
func NewNarrator(out io.Writer, color bool) *Narrator {
	return &Narrator{
		out:       out,
		formatter: game.NewEventFormatter(),
		styles:    newStyles(newRenderer(out, color)),
	}
}

func newRenderer(out io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(out)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// OnEvent implements game.EventSubscriber
func (n *Narrator) OnEvent(event game.GameEvent) {
	line := n.formatter.Format(event)
	if line == "" {
		return
	}

	s := n.styles
	switch e := event.(type) {
	case game.GameStartEvent:
		n.println(s.title.Render(" ♦ ♣ High Card ♥ ♠ "))
		n.println(line)
		n.println(s.rule.Render(separator))
	case game.RoundStartEvent:
		n.println(s.header.Render(line))
		n.println(s.rule.Render(separator))
	case game.CardDrawnEvent:
		cardStyle := s.blackCard
		if e.Card.IsRed() {
			cardStyle = s.redCard
		}
		text := fmt.Sprintf("%s draws: %s", game.PlayerName(e.Player), cardStyle.Render(e.Card.Suit.String()+" "+e.Card.Rank.String()))
		if e.Leading {
			text += " " + s.leading.Render("*")
		}
		n.println(text)
	case game.PlayerSkippedEvent:
		n.println(s.info.Render(line))
	case game.RoundEndEvent:
		n.println(s.winner.Render(line))
		n.println(s.rule.Render(separator))
	case game.GameOverEvent:
		n.println(s.info.Render(line))
	default:
		n.println(line)
	}
}

func (n *Narrator) println(s string) {
	fmt.Fprintln(n.out, s)
}
