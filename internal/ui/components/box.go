package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

const (
	colorBorder = lipgloss.Color("#2b3440")
	colorTitle  = lipgloss.Color("#f28c28")
	colorLabel  = lipgloss.Color("#4f8fba")
	colorText   = lipgloss.Color("#e1e4e8")
	colorMuted  = lipgloss.Color("#8b95a7")
	colorDanger = lipgloss.Color("#e5484d")
)

var (
	boxBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	boxHeaderStyle = lipgloss.NewStyle().
			Foreground(colorTitle).
			Bold(true)

	boxLabelStyle = lipgloss.NewStyle().
			Foreground(colorLabel).
			Bold(true)

	boxValueStyle = lipgloss.NewStyle().
			Foreground(colorText)

	boxMutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7a2f3a")).
			Padding(1, 2)

	errorHeaderStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Bold(true)

	errorBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6b5b5"))
)

// boxWidth is ~70% of the terminal, kept between 40 and 84 columns.
func boxWidth(width int) int {
	if width <= 0 {
		return 0
	}
	w := width * 70 / 100
	if w < 40 {
		w = 40
	}
	if w > 84 {
		w = 84
	}
	if w > width {
		w = width
	}
	return w
}

// frameWidth is the lipgloss width of a box; the border is drawn outside it.
func frameWidth(width int) int {
	w := boxWidth(width)
	if w <= 2 {
		return 0
	}
	return w - 2
}

// Box renders content inside a bordered box.
func Box(content string, width int) string {
	return boxBorder.Width(frameWidth(width)).Render(content)
}

// BoxContentWidth returns the inner width of a box, without border and padding.
func BoxContentWidth(width int) int {
	w := boxWidth(width)
	if w <= 6 {
		return 0
	}
	return w - 6
}

// ClampTextWidth flattens text to one line and cuts it at width cells.
func ClampTextWidth(text string, width int) string {
	cleaned := SanitizeOneLine(text)
	if width <= 0 || lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	if width == 1 {
		return "…"
	}
	return truncateRunes(cleaned, width-1) + "…"
}

// ErrorBox renders a red bordered box.
func ErrorBox(title, message string, width int) string {
	header := ""
	if title != "" {
		header = errorHeaderStyle.Render(title) + "\n\n"
	}
	return errorBorder.Width(frameWidth(width)).Render(header + errorBodyStyle.Render(SanitizeText(message)))
}

// TitledBox renders a box with the title set into its top border.
func TitledBox(title, content string, width int) string {
	boxed := boxBorder.Width(frameWidth(width)).Render(content)
	if title == "" {
		return boxed
	}
	lines := strings.Split(boxed, "\n")
	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 4 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	inner := lineWidth - 2
	label := fmt.Sprintf(" %s ", SanitizeOneLine(title))
	if lipgloss.Width(label) > inner {
		label = truncateRunes(label, inner)
	}
	left := 2
	if left+lipgloss.Width(label) > inner {
		left = 0
	}
	right := inner - left - lipgloss.Width(label)

	edge := lipgloss.NewStyle().Foreground(colorBorder)
	lines[0] = edge.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		boxHeaderStyle.Render(label) +
		edge.Render(strings.Repeat(border.Top, right)+border.TopRight)
	return strings.Join(lines, "\n")
}

// TableRow is one label/value line of a Table.
type TableRow struct {
	Label string
	Value string
}

// Table renders aligned label/value rows in a titled box.
func Table(title string, rows []TableRow, width int) string {
	if len(rows) == 0 {
		return ""
	}
	return TitledBox(title, tableBody(rows, BoxContentWidth(width)), width)
}

func tableBody(rows []TableRow, contentWidth int) string {
	labelWidth := 0
	for _, r := range rows {
		if w := lipgloss.Width(SanitizeOneLine(r.Label)); w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > 22 {
		labelWidth = 22
	}
	valueWidth := contentWidth - labelWidth - 2
	if valueWidth < 4 {
		valueWidth = 0
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := padRight(ClampTextWidth(r.Label, labelWidth), labelWidth)
		lines = append(lines, boxLabelStyle.Render(label)+"  "+boxValueStyle.Render(ClampTextWidth(r.Value, valueWidth)))
	}
	return strings.Join(lines, "\n")
}

// DiffRow is one changed field with its old and new rendering.
type DiffRow struct {
	Label string
	From  string
	To    string
}

var (
	diffFromStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
	diffToStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffc247"))
)

// DiffTable renders from/to pairs, one block per changed field.
func DiffTable(title string, rows []DiffRow, width int) string {
	if len(rows) == 0 {
		return ""
	}
	return TitledBox(title, diffBody(rows, BoxContentWidth(width)), width)
}

func diffBody(rows []DiffRow, contentWidth int) string {
	valueWidth := contentWidth - 4
	show := func(s string) string {
		s = ClampTextWidth(s, valueWidth)
		if s == "" {
			return "(empty)"
		}
		return s
	}

	blocks := make([]string, 0, len(rows))
	for _, r := range rows {
		blocks = append(blocks, strings.Join([]string{
			boxLabelStyle.Render(SanitizeOneLine(r.Label)),
			diffFromStyle.Render("  - " + show(r.From)),
			diffToStyle.Render("  + " + show(r.To)),
		}, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// Indent pads every line of s on the left.
func Indent(s string, spaces int) string {
	pad := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}

// Muted renders s in the muted text color.
func Muted(s string) string {
	return boxMutedStyle.Render(s)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
