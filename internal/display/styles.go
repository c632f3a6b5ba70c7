package display

import (
	"github.com/charmbracelet/lipgloss"
)

const separator = "======================"

// styles holds the narration styles bound to one output renderer
type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	redCard   lipgloss.Style
	blackCard lipgloss.Style
	leading   lipgloss.Style
	winner    lipgloss.Style
	info      lipgloss.Style
	rule      lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		header: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		redCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		blackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		leading: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		winner: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		rule: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
