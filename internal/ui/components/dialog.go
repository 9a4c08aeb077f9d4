package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var dialogStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorBorder).
	Padding(1, 2).
	Width(44)

const confirmHint = "y: confirm | n: cancel"

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	header := boxHeaderStyle.Render(title)
	body := boxMutedStyle.Render(message)
	hint := boxMutedStyle.Render("\n" + confirmHint)
	return dialogStyle.Render(header + "\n\n" + body + hint)
}

// ConfirmPreviewDialog renders a confirmation with a message, optional
// summary rows and a diff of what would be lost or applied.
func ConfirmPreviewDialog(title, message string, summary []TableRow, diffs []DiffRow, width int) string {
	inner := BoxContentWidth(width)
	sections := make([]string, 0, 4)
	if message != "" {
		sections = append(sections, boxValueStyle.Render(message))
	}
	if len(summary) > 0 {
		sections = append(sections, boxHeaderStyle.Render("Summary")+"\n"+tableBody(summary, inner))
	}
	if len(diffs) > 0 {
		sections = append(sections, boxHeaderStyle.Render("Changes")+"\n"+diffBody(diffs, inner))
	}
	sections = append(sections, boxMutedStyle.Render(confirmHint))
	return TitledBox(title, strings.Join(sections, "\n\n"), width)
}
