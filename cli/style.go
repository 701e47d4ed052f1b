package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/plantation/engine"
	"github.com/nathoo/plantation/engine/actions"
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("228"))

	styleIndex = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Width(5).
			Align(lipgloss.Right)

	styleOption = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleMove = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleCell = lipgloss.NewStyle().
			Width(9).
			Align(lipgloss.Right)

	styleNameCell = lipgloss.NewStyle().
			Width(10)

	styleWinner = lipgloss.NewStyle().
			Bold(true)
)

// renderOptions lists the options numbered from 1.
func renderOptions(options []actions.Action) string {
	lines := make([]string, len(options))
	for i, a := range options {
		lines[i] = styleIndex.Render(fmt.Sprintf("%d.", i+1)) + " " + styleOption.Render(a.String())
	}
	return strings.Join(lines, "\n")
}

var scoreColumns = []string{"shipped", "tiers", "city", "custom", "fortress", "guild", "residence", "total"}

// renderScores draws the tally table with the best total in bold.
func renderScores(scores []engine.Score) string {
	best := -1
	for _, s := range scores {
		best = max(best, s.Total)
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render(styleNameCell.Render("player")))
	for _, col := range scoreColumns {
		b.WriteString(styleHeader.Render(styleCell.Render(col)))
	}
	for _, s := range scores {
		d := s.Details
		row := styleNameCell.Render(s.Name)
		for _, v := range []int{d.Shipped, d.Buildings, d.CityHall, d.CustomHouse, d.Fortress, d.GuildHall, d.Residence, s.Total} {
			row += styleCell.Render(fmt.Sprintf("%d", v))
		}
		if s.Total == best {
			row = styleWinner.Render(row)
		}
		b.WriteString("\n")
		b.WriteString(row)
	}
	return b.String()
}
