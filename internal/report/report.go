package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/beamline/internal/ring"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ccff"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff"))

	lostStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 2)
)

func row(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-14s", label)) + valueStyle.Render(value)
}

// Summary renders a styled terminal summary of a tracking run.
func Summary(name string, result *ring.Result) string {
	lost := result.Count - result.Survived

	var b strings.Builder
	b.WriteString(titleStyle.Render("tracking run "+name) + "\n")
	b.WriteString(row("turns", fmt.Sprintf("%d", result.Turns)) + "\n")
	b.WriteString(row("particles", fmt.Sprintf("%d", result.Count)) + "\n")
	b.WriteString(row("survived", fmt.Sprintf("%d (%.1f%%)",
		result.Survived, 100*float64(result.Survived)/float64(result.Count))) + "\n")

	if lost > 0 {
		first := -1
		for _, t := range result.LossTurn {
			if t >= 0 && (first < 0 || t < first) {
				first = t
			}
		}
		b.WriteString(lostStyle.Render(fmt.Sprintf("%-14s%d (first at turn %d)", "lost", lost, first)))
	} else {
		b.WriteString(row("lost", "0"))
	}

	return panelStyle.Render(b.String())
}
