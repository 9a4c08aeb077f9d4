package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines one column of a TableGrid. Width is in cells; the last
// column absorbs whatever space is left.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
}

var (
	gridLineStyle = lipgloss.NewStyle().
			Foreground(colorBorder)
	gridActiveRowStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(lipgloss.Color("#1f2630")).
				Bold(true)
)

// TableGrid renders rows under a header and rule, highlighting activeRow
// (pass -1 for none). Every line is exactly tableWidth cells wide.
func TableGrid(columns []TableColumn, rows [][]string, tableWidth, activeRow int) string {
	if tableWidth <= 0 || len(columns) == 0 {
		return ""
	}
	cols := fitColumns(columns, tableWidth)

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	out := []string{
		boxLabelStyle.Inline(true).Render(renderCells(cols, headers, tableWidth)),
		gridLineStyle.Inline(true).Render(renderRule(cols, tableWidth)),
	}
	for i, row := range rows {
		line := renderCells(cols, row, tableWidth)
		if i == activeRow {
			line = gridActiveRowStyle.Inline(true).Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func fitColumns(columns []TableColumn, tableWidth int) []TableColumn {
	cols := make([]TableColumn, len(columns))
	copy(cols, columns)
	used := 0
	for i := range cols {
		if cols[i].Width < 1 {
			cols[i].Width = 1
		}
		used += cols[i].Width
	}
	used += 3 * (len(cols) - 1)
	last := &cols[len(cols)-1]
	last.Width += tableWidth - used
	if last.Width < 1 {
		last.Width = 1
	}
	return cols
}

func renderCells(cols []TableColumn, cells []string, tableWidth int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		parts[i] = alignCell(ClampTextWidth(text, c.Width), c.Width, c.Align)
	}
	return clampLine(strings.Join(parts, " │ "), tableWidth)
}

func renderRule(cols []TableColumn, tableWidth int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = strings.Repeat("─", c.Width)
	}
	return clampLine(strings.Join(parts, "─┼─"), tableWidth)
}

func alignCell(text string, width int, align lipgloss.Position) string {
	pad := width - lipgloss.Width(text)
	if pad <= 0 {
		return text
	}
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + text
	case lipgloss.Center:
		return strings.Repeat(" ", pad/2) + text + strings.Repeat(" ", pad-pad/2)
	}
	return text + strings.Repeat(" ", pad)
}

func clampLine(line string, width int) string {
	if lipgloss.Width(line) > width {
		return truncateRunes(line, width)
	}
	return padRight(line, width)
}
