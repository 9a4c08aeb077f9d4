package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

var (
	ColorPrimary    = lipgloss.Color("#f28c28") // kart orange
	ColorSecondary  = lipgloss.Color("#4f8fba") // steel blue
	ColorBackground = lipgloss.Color("#101418") // asphalt
	ColorText       = lipgloss.Color("#e1e4e8")
	ColorMuted      = lipgloss.Color("#8b95a7")
	ColorSuccess    = lipgloss.Color("#3fa66b")
	ColorError      = lipgloss.Color("#e5484d")
	ColorWarning    = lipgloss.Color("#f5c542")
	ColorBorder     = lipgloss.Color("#2b3440")
)

// --- Reusable Styles ---

var (
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorBackground).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	ScopeStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)
