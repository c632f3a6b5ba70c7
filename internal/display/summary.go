package display

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"

	"github.com/lox/highcard/internal/game"
	"github.com/lox/highcard/internal/simulator"
)

// RenderSummary writes the aggregate of a simulation run
func RenderSummary(out io.Writer, report *simulator.Report, color bool) error {
	if color {
		pterm.EnableStyling()
	} else {
		pterm.DisableStyling()
	}

	s := newStyles(newRenderer(out, color))
	stats := report.Stats
	cfg := report.Config

	lines := []string{
		s.title.Render(" ♦ ♣ High Card ♥ ♠ "),
		s.header.Render("Simulation results"),
		fmt.Sprintf("Games played: %d (%d players, %d %s, seed %d)",
			stats.Games, cfg.Players, cfg.Decks, plural(cfg.Decks, "deck", "decks"), cfg.Seed),
		fmt.Sprintf("Rounds per game: %.2f mean, %.1f median", stats.Rounds.Mean(), stats.MedianRounds()),
		fmt.Sprintf("Cards left per game: %.2f", stats.CardsLeft.Mean()),
		fmt.Sprintf("Tied games: %d (%.1f%%)", stats.Ties, stats.TieRate()*100),
	}
	if cfg.SkipProbability > 0 {
		lines = append(lines, fmt.Sprintf("Skip probability: %.2f", cfg.SkipProbability))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(out, l); err != nil {
			return err
		}
	}

	data := pterm.TableData{{"Player", "Mean", "Std Dev", "95% CI", "Wins", "Win %", "Shared"}}
	for i, seat := range stats.Seats {
		lo, hi := seat.Score.ConfidenceInterval95()
		data = append(data, []string{
			game.PlayerName(i),
			fmt.Sprintf("%.3f", seat.Score.Mean()),
			fmt.Sprintf("%.3f", seat.Score.StdDev()),
			fmt.Sprintf("[%.2f, %.2f]", lo, hi),
			strconv.Itoa(seat.Wins),
			fmt.Sprintf("%.1f", stats.WinShare(i)*100),
			strconv.Itoa(seat.SharedWins),
		})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if _, err := fmt.Fprintln(out, table); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, s.info.Render(fmt.Sprintf("Completed in %s", report.Duration.Round(time.Millisecond))))
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
