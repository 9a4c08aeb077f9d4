package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Brasil-Rental-Karts/brk-cli/internal/api"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/router"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/ui/components"
)

const optionsTimeout = 15 * time.Second

// --- Messages ---

type listLoadedMsg struct {
	key  string
	seq  int
	rows []listRow
	err  error
}

type optionsLoadedMsg struct {
	key  string
	seq  int
	id   string
	opts fieldOptions
	err  error
}

// navigateMsg asks the app to route to a path.
type navigateMsg struct {
	to string
}

// selectScopeMsg changes the working championship or season.
type selectScopeMsg struct {
	level scopeNeed
	id    string
	name  string
}

// --- Resource Model ---

// resourceModel is one tab: a list of records plus the form opened on it.
type resourceModel struct {
	def    *resourceDef
	client *api.Client
	host   formHost
	log    *zap.Logger

	scope scope
	route string
	seq   int

	list    *components.List
	rows    []listRow
	loading bool
	err     string

	form        formView
	formLoading bool
	formErr     string

	width  int
	height int
}

func newResourceModel(def *resourceDef, client *api.Client, host formHost, pageSize int) *resourceModel {
	log := host.log
	if log == nil {
		log = zap.NewNop()
	}
	return &resourceModel{
		def:    def,
		client: client,
		host:   host,
		log:    log.With(zap.String("resource", def.key)),
		list:   components.NewList(pageSize),
	}
}

// onForm reports whether a form (or its options) owns the keyboard.
func (m *resourceModel) onForm() bool {
	return m.form != nil || m.formLoading
}

func (m *resourceModel) pending() bool {
	return m.form != nil && m.form.Pending()
}

func (m *resourceModel) setSize(width, height int) {
	m.width, m.height = width, height
	m.host.width = width
	if m.form != nil {
		m.form.SetWidth(width)
	}
}

// open shows path, which is the list, "/<key>/new" or "/<key>/<id>/edit".
func (m *resourceModel) open(path string, sc scope) tea.Cmd {
	m.closeForm()
	m.scope = sc
	m.route = path
	m.err = ""
	m.formErr = ""
	m.seq++

	if missing := sc.missing(m.def.need); missing != "" {
		m.rows = nil
		m.list.Reset(0)
		m.err = missing
		return nil
	}
	if _, ok := router.Match(m.def.listPath()+"/new", path); ok {
		if !m.def.creatable {
			m.formErr = m.def.title + " cannot be created here."
			return nil
		}
		return m.startForm("")
	}
	if params, ok := router.Match(m.def.listPath()+"/:id/edit", path); ok {
		return m.startForm(params["id"])
	}
	return m.reload()
}

func (m *resourceModel) reload() tea.Cmd {
	m.loading = true
	m.err = ""
	client, sc, key, seq, list := m.client, m.scope, m.def.key, m.seq, m.def.list
	return func() tea.Msg {
		rows, err := list(client, sc)
		return listLoadedMsg{key: key, seq: seq, rows: rows, err: err}
	}
}

func (m *resourceModel) startForm(id string) tea.Cmd {
	if m.def.options == nil {
		return m.buildForm(id, nil)
	}
	m.formLoading = true
	client, sc, key, seq, load := m.client, m.scope, m.def.key, m.seq, m.def.options
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), optionsTimeout)
		defer cancel()
		opts, err := load(ctx, client, sc)
		return optionsLoadedMsg{key: key, seq: seq, id: id, opts: opts, err: err}
	}
}

func (m *resourceModel) buildForm(id string, opts fieldOptions) tea.Cmd {
	m.formLoading = false
	f, err := m.def.form(m.host, m.client, m.scope, id, opts)
	if err != nil {
		m.log.Error("open form", zap.String("id", id), zap.Error(err))
		m.formErr = err.Error()
		return nil
	}
	m.form = f
	return f.Init()
}

func (m *resourceModel) closeForm() {
	if m.form != nil {
		m.form.Close()
		m.form = nil
	}
	m.formLoading = false
}

// --- Update ---

func (m *resourceModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case listLoadedMsg:
		if msg.key != m.def.key || msg.seq != m.seq {
			return nil
		}
		m.loading = false
		if msg.err != nil {
			m.log.Warn("list failed", zap.Error(msg.err))
			m.err = msg.err.Error()
			return nil
		}
		m.rows = msg.rows
		m.list.Reset(len(m.rows))
		return nil
	case optionsLoadedMsg:
		if msg.key != m.def.key || msg.seq != m.seq || !m.formLoading {
			return nil
		}
		if msg.err != nil {
			m.formLoading = false
			m.formErr = msg.err.Error()
			return nil
		}
		return m.buildForm(msg.id, msg.opts)
	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	if m.form != nil {
		return m.form.Update(msg)
	}
	return nil
}

func (m *resourceModel) handleKeys(msg tea.KeyMsg) tea.Cmd {
	if m.form != nil {
		return m.form.Update(msg)
	}
	if m.formLoading || m.formErr != "" {
		if isBack(msg) {
			m.formLoading = false
			return leave(m.def.listPath())
		}
		return nil
	}
	if m.err != "" && m.scope.missing(m.def.need) != "" {
		return nil
	}

	switch {
	case isDown(msg):
		m.list.Down()
	case isUp(msg):
		m.list.Up()
	case isKey(msg, "r"):
		return m.reload()
	case isKey(msg, "n"):
		if m.def.creatable {
			return navigate(m.def.listPath() + "/new")
		}
	case isEnter(msg), isKey(msg, "e"):
		if row, ok := m.selected(); ok {
			return navigate(fmt.Sprintf("%s/%s/edit", m.def.listPath(), row.id))
		}
	case isKey(msg, "s"):
		if row, ok := m.selected(); ok && m.def.selects != needNone {
			level, id, name := m.def.selects, row.id, row.label
			return func() tea.Msg { return selectScopeMsg{level: level, id: id, name: name} }
		}
	}
	return nil
}

func (m *resourceModel) selected() (listRow, bool) {
	idx := m.list.Selected()
	if idx < 0 || idx >= len(m.rows) {
		return listRow{}, false
	}
	return m.rows[idx], true
}

func navigate(to string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{to: to} }
}

// --- View ---

func (m *resourceModel) View() string {
	if m.form != nil {
		return m.form.View()
	}
	if m.formLoading {
		return components.TitledBox(m.def.singular, MutedStyle.Render("Loading options…"), m.width)
	}
	if m.formErr != "" {
		return components.ErrorBox("Could not open "+strings.ToLower(m.def.singular), m.formErr, m.width)
	}
	if m.err != "" {
		if m.scope.missing(m.def.need) != "" {
			return components.TitledBox(m.def.title, MutedStyle.Render(m.err), m.width)
		}
		return components.ErrorBox("Could not load "+strings.ToLower(m.def.title), m.err, m.width)
	}
	if m.loading {
		return components.TitledBox(m.def.title, MutedStyle.Render("Loading…"), m.width)
	}
	if len(m.rows) == 0 {
		empty := "No " + strings.ToLower(m.def.title) + " yet."
		if m.def.creatable {
			empty += " Press n to add one."
		}
		return components.TitledBox(m.def.title, MutedStyle.Render(empty), m.width)
	}

	start, end := m.list.Window()
	cells := make([][]string, 0, end-start)
	for _, row := range m.rows[start:end] {
		clean := make([]string, len(row.cells))
		for i, c := range row.cells {
			clean[i] = components.SanitizeOneLine(c)
		}
		cells = append(cells, clean)
	}
	grid := components.TableGrid(m.def.columns, cells, components.BoxContentWidth(m.width), m.list.Selected()-start)
	footer := MutedStyle.Render(fmt.Sprintf("%d of %d", m.list.Selected()+1, len(m.rows)))
	return components.TitledBox(m.def.title, grid+"\n\n"+footer, m.width)
}

func (m *resourceModel) Hints() []string {
	if m.form != nil {
		return m.form.Hints()
	}
	if m.formLoading || m.formErr != "" {
		return []string{components.Hint("esc", "Back")}
	}
	hints := []string{components.Hint("↑/↓", "Move"), components.Hint("enter", "Edit")}
	if m.def.creatable {
		hints = append(hints, components.Hint("n", "New"))
	}
	if m.def.selects != needNone {
		hints = append(hints, components.Hint("s", "Select"))
	}
	return append(hints, components.Hint("r", "Reload"))
}
