package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/satprep/satprep/internal/ui/theme"
)

const bannerFull = `███████╗ █████╗ ████████╗   ██████╗ ██████╗ ███████╗██████╗
██╔════╝██╔══██╗╚══██╔══╝   ██╔══██╗██╔══██╗██╔════╝██╔══██╗
███████╗███████║   ██║      ██████╔╝██████╔╝█████╗  ██████╔╝
╚════██║██╔══██║   ██║      ██╔═══╝ ██╔══██╗██╔══╝  ██╔═══╝
███████║██║  ██║   ██║      ██║     ██║  ██║███████╗██║
╚══════╝╚═╝  ╚═╝   ╚═╝      ╚═╝     ╚═╝  ╚═╝╚══════╝╚═╝`

const bannerCompact = "S · A · T   P · R · E · P"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	art := bannerFull
	if compact {
		art = bannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art))
}

// renderStatsBar shows the bank size per subject and the flag count.
func renderStatsBar(math, english, flags, cw int) string {
	num := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	stats := fmt.Sprintf("%s %s   %s %s   %s %s",
		num.Render(fmt.Sprint(math)), dim.Render("math"),
		num.Render(fmt.Sprint(english)), dim.Render("english"),
		num.Render(fmt.Sprintf("⚑ %d", flags)), dim.Render("flagged"),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button, or as plain
// lines when the terminal is short.
func renderMenu(items []string, selected, cw int, compact bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Padding(0, 1)

	if !compact {
		selectedBtn = selectedBtn.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Primary)
		normalBtn = normalBtn.Border(lipgloss.RoundedBorder()).BorderForeground(theme.Border)
	}

	buttons := make([]string, len(items))
	for i, label := range items {
		if i == selected {
			buttons[i] = selectedBtn.Render("▸ " + label)
		} else {
			buttons[i] = normalBtn.Render(label)
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderFrame wraps content in a border, centered in the given area.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
