package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/lox/highcard/internal/game"
)

// Scoreboard renders the final standings
type Scoreboard struct {
	out   io.Writer
	color bool
}

// NewScoreboard creates a scoreboard writer
func NewScoreboard(out io.Writer, color bool) *Scoreboard {
	return &Scoreboard{out: out, color: color}
}

// Render writes the ranked table followed by the winner line
func (sb *Scoreboard) Render(result *game.Result) error {
	table, err := sb.Table(result.Standings)
	if err != nil {
		return err
	}

	s := newStyles(newRenderer(sb.out, sb.color))
	if _, err := fmt.Fprintln(sb.out, s.header.Render("Final scores")); err != nil {
		return err
	}
	if _, err := fmt.Fprint(sb.out, table); err != nil {
		return err
	}
	_, err = fmt.Fprintln(sb.out, s.winner.Render(WinnerLine(result.Scores)))
	return err
}

// Table renders standings as a text table
func (sb *Scoreboard) Table(standings []game.Standing) (string, error) {
	if sb.color {
		pterm.EnableStyling()
	} else {
		pterm.DisableStyling()
	}

	data := pterm.TableData{{"Place", "Player", "Points"}}
	for _, st := range standings {
		data = append(data, []string{
			strconv.Itoa(st.Place),
			game.PlayerName(st.Player),
			strconv.Itoa(st.Score),
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return "", fmt.Errorf("failed to render scoreboard: %w", err)
	}
	return out + "\n", nil
}

// WinnerLine names the overall winner, or every player sharing the top score
func WinnerLine(scores []int) string {
	leaders := game.Leaders(scores)
	if len(leaders) == 0 {
		return "No rounds were won"
	}

	names := make([]string, len(leaders))
	for i, p := range leaders {
		names[i] = game.PlayerName(p)
	}
	points := scores[leaders[0]]
	unit := "points"
	if points == 1 {
		unit = "point"
	}
	if len(leaders) == 1 {
		return fmt.Sprintf("Winner: %s with %d %s", names[0], points, unit)
	}
	return fmt.Sprintf("Tied winners: %s with %d %s each", strings.Join(names, ", "), points, unit)
}
