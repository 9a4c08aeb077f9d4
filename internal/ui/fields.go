package ui

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/runeutil"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Brasil-Rental-Karts/brk-cli/internal/form"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/ui/components"
)

// --- Field Definitions ---

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldLongText
	fieldNumber
	fieldMoney
	fieldDate
	fieldSelect
	fieldMulti
	fieldToggle
)

const (
	dateLayout     = "2006-01-02"
	longTextHeight = 4
)

var (
	// Mirror what the inputs do to text so snapshots match what they hold.
	lineSanitizer  = runeutil.NewSanitizer(runeutil.ReplaceTabs(" "), runeutil.ReplaceNewlines(" "))
	blockSanitizer = runeutil.NewSanitizer()
)

type option struct {
	value string
	label string
}

// fieldDef describes one input of a form. name is the JSON key of the
// record, so fetched records project straight onto the fields.
type fieldDef struct {
	name        string
	label       string
	kind        fieldKind
	required    bool
	requiredIf  func(all form.Values) bool
	integer     bool
	placeholder string
	options     []option
	// validate returns a message when v is unacceptable. all holds every
	// field value so rules can look at siblings.
	validate func(v any, all form.Values) string
}

type fieldOptions map[string][]option

// withOptions fills select and multi options from opts by field name.
func withOptions(defs []fieldDef, opts fieldOptions) []fieldDef {
	out := make([]fieldDef, len(defs))
	copy(out, defs)
	for i := range out {
		if list, ok := opts[out[i].name]; ok {
			out[i].options = list
		}
	}
	return out
}

// --- Field Set ---

type fieldState struct {
	def    fieldDef
	input  textinput.Model
	area   textarea.Model
	choice int
	picks  map[string]bool
	cursor int
	on     bool
}

// fieldSet renders a list of fields and reports their values.
type fieldSet struct {
	fields     []*fieldState
	focus      int
	showErrors bool
}

func newFieldSet(defs []fieldDef) fieldSet {
	fs := fieldSet{fields: make([]*fieldState, 0, len(defs))}
	for _, def := range defs {
		st := &fieldState{def: def, choice: -1, picks: map[string]bool{}}
		switch {
		case def.kind == fieldLongText:
			ta := textarea.New()
			ta.Prompt = ""
			ta.ShowLineNumbers = false
			ta.Placeholder = def.placeholder
			ta.SetHeight(longTextHeight)
			st.area = ta
		case def.kind.textual():
			ti := textinput.New()
			ti.Prompt = ""
			ti.Placeholder = def.placeholder
			if ti.Placeholder == "" {
				ti.Placeholder = def.kind.placeholder()
			}
			st.input = ti
		}
		fs.fields = append(fs.fields, st)
	}
	fs.setFocus(0)
	return fs
}

func (k fieldKind) textual() bool {
	switch k {
	case fieldText, fieldNumber, fieldMoney, fieldDate:
		return true
	}
	return false
}

func (k fieldKind) placeholder() string {
	switch k {
	case fieldMoney:
		return "0,00"
	case fieldDate:
		return "YYYY-MM-DD"
	}
	return ""
}

func (fs *fieldSet) setFocus(i int) {
	if len(fs.fields) == 0 {
		return
	}
	if i < 0 {
		i = len(fs.fields) - 1
	}
	if i >= len(fs.fields) {
		i = 0
	}
	for idx, st := range fs.fields {
		switch {
		case st.def.kind == fieldLongText && idx == i:
			st.area.Focus()
		case st.def.kind == fieldLongText:
			st.area.Blur()
		case st.def.kind.textual() && idx == i:
			st.input.Focus()
		case st.def.kind.textual():
			st.input.Blur()
		}
	}
	fs.focus = i
}

// Focused returns the name of the focused field.
func (fs *fieldSet) Focused() string {
	if len(fs.fields) == 0 {
		return ""
	}
	return fs.fields[fs.focus].def.name
}

// SetValues loads values into the inputs.
func (fs *fieldSet) SetValues(values form.Values) {
	for _, st := range fs.fields {
		raw := coerce(st.def, values[st.def.name])
		switch st.def.kind {
		case fieldText, fieldDate:
			st.input.SetValue(raw.(string))
		case fieldLongText:
			st.area.SetValue(raw.(string))
		case fieldNumber:
			if f, ok := raw.(float64); ok {
				st.input.SetValue(strconv.FormatFloat(f, 'f', -1, 64))
			} else {
				st.input.SetValue("")
			}
		case fieldMoney:
			if f, ok := raw.(float64); ok {
				st.input.SetValue(strings.Replace(strconv.FormatFloat(f, 'f', 2, 64), ".", ",", 1))
			} else {
				st.input.SetValue("")
			}
		case fieldSelect:
			st.choice = st.ensureOption(raw.(string))
		case fieldMulti:
			st.picks = map[string]bool{}
			for _, v := range raw.([]string) {
				st.ensureOption(v)
				st.picks[v] = true
			}
		case fieldToggle:
			st.on = raw.(bool)
		}
	}
}

// ensureOption returns the index of value, adding it when the backend sent
// something outside the known options so it survives a round trip.
func (st *fieldState) ensureOption(value string) int {
	if value == "" {
		return -1
	}
	for i, o := range st.def.options {
		if o.value == value {
			return i
		}
	}
	st.def.options = append(st.def.options, option{value: value, label: value})
	return len(st.def.options) - 1
}

// Values reports the live field values.
func (fs *fieldSet) Values() form.Values {
	out := make(form.Values, len(fs.fields))
	for _, st := range fs.fields {
		out[st.def.name] = st.value()
	}
	return out
}

func (st *fieldState) value() any {
	switch st.def.kind {
	case fieldNumber:
		return parseOrRaw(st.text(), parseNumber)
	case fieldMoney:
		return parseOrRaw(st.text(), parseMoney)
	case fieldSelect:
		if st.choice < 0 || st.choice >= len(st.def.options) {
			return ""
		}
		return st.def.options[st.choice].value
	case fieldMulti:
		picked := make([]string, 0, len(st.picks))
		for _, o := range st.def.options {
			if st.picks[o.value] {
				picked = append(picked, o.value)
			}
		}
		return picked
	case fieldToggle:
		return st.on
	}
	return st.text()
}

// text is the raw text of a text-like field, "" for the others.
func (st *fieldState) text() string {
	switch {
	case st.def.kind == fieldLongText:
		return st.area.Value()
	case st.def.kind.textual():
		return st.input.Value()
	}
	return ""
}

func parseOrRaw(text string, parse func(string) (float64, error)) any {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	f, err := parse(text)
	if err != nil {
		return text
	}
	return f
}

// Update handles a key for the focused field.
func (fs *fieldSet) Update(msg tea.KeyMsg) tea.Cmd {
	if len(fs.fields) == 0 {
		return nil
	}
	st := fs.fields[fs.focus]

	// Text areas keep up, down and enter for themselves.
	if st.def.kind == fieldLongText && !isKey(msg, "tab", "shift+tab") {
		var cmd tea.Cmd
		st.area, cmd = st.area.Update(msg)
		return cmd
	}

	switch {
	case isNextField(msg):
		fs.setFocus(fs.focus + 1)
		return nil
	case isPrevField(msg):
		fs.setFocus(fs.focus - 1)
		return nil
	}

	switch st.def.kind {
	case fieldSelect:
		n := len(st.def.options)
		if n == 0 {
			return nil
		}
		switch {
		case isKey(msg, "right", " "):
			st.choice = (st.choice + 1) % n
		case isKey(msg, "left"):
			if st.choice <= 0 {
				st.choice = n - 1
			} else {
				st.choice--
			}
		case isKey(msg, "backspace", "delete") && !st.def.required:
			st.choice = -1
		}
		return nil
	case fieldMulti:
		n := len(st.def.options)
		if n == 0 {
			return nil
		}
		switch {
		case isKey(msg, "right"):
			st.cursor = (st.cursor + 1) % n
		case isKey(msg, "left"):
			st.cursor = (st.cursor - 1 + n) % n
		case isSpace(msg):
			v := st.def.options[st.cursor].value
			if st.picks[v] {
				delete(st.picks, v)
			} else {
				st.picks[v] = true
			}
		}
		return nil
	case fieldToggle:
		if isKey(msg, " ", "left", "right") {
			st.on = !st.on
		}
		return nil
	}

	var cmd tea.Cmd
	st.input, cmd = st.input.Update(msg)
	return cmd
}

// --- Validation ---

// FieldErrors lists invalid field names in render order.
func (fs *fieldSet) FieldErrors() []string {
	all := fs.Values()
	var names []string
	for _, st := range fs.fields {
		if st.problem(all) != "" {
			names = append(names, st.def.name)
		}
	}
	return names
}

// FocusFirstInvalid turns on error display and moves focus to the first
// invalid field.
func (fs *fieldSet) FocusFirstInvalid() {
	fs.showErrors = true
	all := fs.Values()
	for i, st := range fs.fields {
		if st.problem(all) != "" {
			fs.setFocus(i)
			return
		}
	}
}

func (st *fieldState) problem(all form.Values) string {
	v := all[st.def.name]
	text := strings.TrimSpace(st.text())

	if isBlank(v) && (st.def.required || (st.def.requiredIf != nil && st.def.requiredIf(all))) {
		return "required"
	}
	switch st.def.kind {
	case fieldNumber, fieldMoney:
		if text == "" {
			break
		}
		f, ok := v.(float64)
		if !ok {
			if st.def.kind == fieldMoney {
				return "must be an amount like 1.250,00"
			}
			return "must be a number"
		}
		if st.def.integer && f != float64(int64(f)) {
			return "must be a whole number"
		}
		if f < 0 {
			return "must not be negative"
		}
	case fieldDate:
		if text == "" {
			break
		}
		if _, err := time.Parse(dateLayout, text); err != nil {
			return "must be a date like 2026-03-14"
		}
	}
	if st.def.validate != nil && !isBlank(v) {
		return st.def.validate(v, all)
	}
	return ""
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	}
	return false
}

// --- Display ---

// label returns the label of a field, or its name when unknown.
func (fs *fieldSet) label(name string) string {
	for _, st := range fs.fields {
		if st.def.name == name {
			return st.def.label
		}
	}
	return name
}

// display renders a value the way the field shows it.
func (fs *fieldSet) display(name string, v any) string {
	for _, st := range fs.fields {
		if st.def.name != name {
			continue
		}
		switch st.def.kind {
		case fieldSelect:
			return optionLabel(st.def.options, form.Display(v))
		case fieldMulti:
			vals, _ := coerce(st.def, v).([]string)
			labels := make([]string, 0, len(vals))
			for _, val := range vals {
				labels = append(labels, optionLabel(st.def.options, val))
			}
			sort.Strings(labels)
			return strings.Join(labels, ", ")
		case fieldToggle:
			if on, _ := v.(bool); on {
				return "yes"
			}
			return "no"
		case fieldMoney:
			if f, ok := v.(float64); ok {
				return formatBRL(f)
			}
		}
		break
	}
	return form.Display(v)
}

func optionLabel(opts []option, value string) string {
	for _, o := range opts {
		if o.value == value {
			return o.label
		}
	}
	return value
}

// View renders the fields, one per line.
func (fs *fieldSet) View(width int) string {
	labelWidth := 0
	for _, st := range fs.fields {
		if w := len([]rune(st.def.label)) + 2; w > labelWidth {
			labelWidth = w
		}
	}
	all := fs.Values()

	lines := make([]string, 0, len(fs.fields)*2)
	for i, st := range fs.fields {
		focused := i == fs.focus
		label := st.def.label
		if st.def.required {
			label += "*"
		}
		label = fmt.Sprintf("%-*s", labelWidth, label)
		marker := "  "
		if focused {
			marker = SelectedStyle.Render("› ")
			label = SelectedStyle.Render(label)
		} else {
			label = LabelStyle.Render(label)
		}
		if st.def.kind == fieldLongText {
			st.area.SetWidth(max(20, width-labelWidth-3))
		}
		body := strings.ReplaceAll(st.render(focused), "\n", "\n"+strings.Repeat(" ", labelWidth+3))
		lines = append(lines, marker+label+" "+body)
		if fs.showErrors {
			if msg := st.problem(all); msg != "" {
				lines = append(lines, strings.Repeat(" ", labelWidth+3)+ErrorStyle.Render(msg))
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (st *fieldState) render(focused bool) string {
	switch st.def.kind {
	case fieldSelect:
		text := "(none)"
		if st.choice >= 0 && st.choice < len(st.def.options) {
			text = st.def.options[st.choice].label
		}
		if focused {
			return SelectedStyle.Render("‹ " + components.SanitizeOneLine(text) + " ›")
		}
		return NormalStyle.Render(components.SanitizeOneLine(text))
	case fieldMulti:
		if len(st.def.options) == 0 {
			return MutedStyle.Render("(no options)")
		}
		parts := make([]string, 0, len(st.def.options))
		for i, o := range st.def.options {
			box := "[ ]"
			if st.picks[o.value] {
				box = "[x]"
			}
			item := box + " " + components.SanitizeOneLine(o.label)
			if focused && i == st.cursor {
				item = SelectedStyle.Render(item)
			}
			parts = append(parts, item)
		}
		return strings.Join(parts, "  ")
	case fieldToggle:
		if st.on {
			return SuccessStyle.Render("[x]")
		}
		return MutedStyle.Render("[ ]")
	case fieldLongText:
		return st.area.View()
	}
	return st.input.View()
}

// --- Coercion ---

// coerce turns a value from a record projection into the shape the field
// produces itself, so an untouched form compares equal to its snapshot.
func coerce(def fieldDef, v any) any {
	switch def.kind {
	case fieldNumber, fieldMoney:
		f, ok := toFloat(def, v)
		if !ok {
			return nil
		}
		if def.kind == fieldMoney {
			// Amounts are edited in cents.
			f = math.Round(f*100) / 100
		}
		return f
	case fieldText:
		return string(lineSanitizer.Sanitize([]rune(stringOf(v))))
	case fieldLongText:
		text := strings.ReplaceAll(stringOf(v), "\r\n", "\n")
		return string(blockSanitizer.Sanitize([]rune(text)))
	case fieldDate:
		s := stringOf(v)
		if len(s) >= len(dateLayout) {
			if _, err := time.Parse(dateLayout, s[:len(dateLayout)]); err == nil {
				return s[:len(dateLayout)]
			}
		}
		return s
	case fieldMulti:
		switch t := v.(type) {
		case []string:
			return append([]string{}, t...)
		case []any:
			out := make([]string, 0, len(t))
			for _, item := range t {
				out = append(out, stringOf(item))
			}
			return out
		}
		return []string{}
	case fieldToggle:
		b, _ := v.(bool)
		return b
	}
	return stringOf(v)
}

func toFloat(def fieldDef, v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		parse := parseNumber
		if def.kind == fieldMoney {
			parse = parseMoney
		}
		if f, err := parse(t); err == nil {
			return f, true
		}
	}
	return 0, false
}

func stringOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}
	return fmt.Sprint(v)
}

// pickValues keeps only the keys of defs, coerced to field shape.
func pickValues(defs []fieldDef, v form.Values) form.Values {
	out := make(form.Values, len(defs))
	for _, def := range defs {
		out[def.name] = coerce(def, v[def.name])
	}
	return out
}

// --- Parsing ---

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// parseMoney accepts "1.250,50", "1250,5" and "1250.50".
func parseMoney(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return f, nil
}

// formatBRL renders an amount as "R$ 1.250,50".
func formatBRL(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	fixed := strconv.FormatFloat(v, 'f', 2, 64)
	whole, cents := fixed[:len(fixed)-3], fixed[len(fixed)-2:]

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := "R$ " + b.String() + "," + cents
	if neg {
		out = "-" + out
	}
	return out
}
