package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
 ██████╗ ██████╗ ██╗  ██╗
 ██╔══██╗██╔══██╗██║ ██╔╝
 ██████╔╝██████╔╝█████╔╝
 ██╔══██╗██╔══██╗██╔═██╗
 ██████╔╝██║  ██║██║  ██╗
 ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝`

const bannerSubtitle = "Brasil Rental Karts • Championship Console"

// RenderBanner returns the styled banner with its subtitle underlined.
func RenderBanner() string {
	art := strings.Split(strings.TrimPrefix(bannerArt, "\n"), "\n")
	block := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true).Render(strings.Join(art, "\n"))

	width := lipgloss.Width(bannerSubtitle)
	if w := lipgloss.Width(block); w > width {
		width = w
	}
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	return "\n" + center.Render(block) + "\n\n" +
		center.Foreground(ColorMuted).Render(bannerSubtitle) + "\n" +
		center.Foreground(ColorBorder).Render(strings.Repeat("─", lipgloss.Width(bannerSubtitle))) + "\n"
}
