package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Brasil-Rental-Karts/brk-cli/internal/form"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/ui/components"
)

// formView is what a resource tab needs from an open form.
type formView interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	Hints() []string
	SetWidth(width int)
	Pending() bool
	Close()
}

// formHost carries the app-level collaborators every form shares.
type formHost struct {
	blocker form.Blocker
	unload  form.UnloadHooks
	log     *zap.Logger
	width   int
}

// leaveMsg asks the app to leave the current form, going back in history or
// to fallback when there is nothing to go back to.
type leaveMsg struct {
	fallback string
}

func leave(fallback string) tea.Cmd {
	return func() tea.Msg { return leaveMsg{fallback: fallback} }
}

// formConfig binds a record type to its fields and endpoints.
type formConfig[R any] struct {
	title    string
	fields   []fieldDef
	defaults form.Values
	backTo   string

	fetch   func(id string) (R, error)
	create  func(payload any) (R, error)
	update  func(id string, payload any) (R, error)
	toForm  func(R) (form.Values, error)
	payload func(form.Values) (any, error)

	successMessage string
	errorMessage   string
}

type formScreenModel[R any] struct {
	title   string
	screen  *form.Screen[R]
	fields  fieldSet
	spinner spinner.Model
	width   int
}

func newFormScreen[R any](host formHost, id string, cfg formConfig[R]) (*formScreenModel[R], error) {
	defs := cfg.fields
	toForm := cfg.toForm
	if toForm == nil {
		toForm = form.Project[R]
	}
	screen, err := form.New(form.Options[R]{
		ID:     id,
		Fetch:  cfg.fetch,
		Create: cfg.create,
		Update: cfg.update,
		ToForm: func(r R) (form.Values, error) {
			v, err := toForm(r)
			if err != nil {
				return nil, err
			}
			return pickValues(defs, v), nil
		},
		ToPayload:      cfg.payload,
		Defaults:       pickValues(defs, cfg.defaults),
		OnSuccess:      func(R) tea.Cmd { return leave(cfg.backTo) },
		OnCancel:       func() tea.Cmd { return leave(cfg.backTo) },
		SuccessMessage: cfg.successMessage,
		ErrorMessage:   cfg.errorMessage,
		Blocker:        host.blocker,
		Unload:         host.unload,
		Logger:         host.log,
	})
	if err != nil {
		return nil, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = SelectedStyle

	return &formScreenModel[R]{
		title:   cfg.title,
		screen:  screen,
		fields:  newFieldSet(defs),
		spinner: sp,
		width:   host.width,
	}, nil
}

func (m *formScreenModel[R]) Init() tea.Cmd {
	cmd := m.screen.Init()
	if m.screen.State() == form.StateReady {
		m.fields.SetValues(m.screen.Initial())
		return cmd
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *formScreenModel[R]) SetWidth(width int) { m.width = width }

func (m *formScreenModel[R]) Pending() bool { return m.screen.NavigationPending() }

func (m *formScreenModel[R]) Close() { m.screen.Close() }

func (m *formScreenModel[R]) busy() bool {
	switch m.screen.State() {
	case form.StateLoading, form.StateSaving:
		return true
	}
	return false
}

func (m *formScreenModel[R]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case form.LoadedMsg:
		cmd := m.screen.Update(msg)
		if m.screen.State() == form.StateReady {
			m.fields.SetValues(m.screen.Initial())
		}
		return cmd
	case form.InitializedMsg, form.SubmittedMsg:
		return m.screen.Update(msg)
	case spinner.TickMsg:
		if !m.busy() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		return m.handleKeys(msg)
	}
	return nil
}

func (m *formScreenModel[R]) handleKeys(msg tea.KeyMsg) tea.Cmd {
	if m.screen.NavigationPending() {
		switch {
		case isConfirm(msg):
			return m.screen.ConfirmNavigation()
		case isDeny(msg):
			m.screen.CancelNavigation()
		}
		return nil
	}

	switch m.screen.State() {
	case form.StateLoading, form.StateLoadFailed:
		if isBack(msg) {
			return m.screen.Cancel()
		}
		return nil
	case form.StateSaving:
		return nil
	}
	if m.screen.Saved() {
		return nil
	}

	switch {
	case isBack(msg):
		return m.screen.Cancel()
	case isSave(msg):
		cmd := m.screen.Submit(m.fields.Values(), &m.fields)
		if cmd == nil {
			return nil
		}
		return tea.Batch(cmd, m.spinner.Tick)
	}

	cmd := m.fields.Update(msg)
	m.screen.SetValues(m.fields.Values())
	return cmd
}

// --- View ---

func (m *formScreenModel[R]) heading() string {
	if m.screen.Mode() == form.ModeEdit {
		return "Edit " + m.title
	}
	return "New " + m.title
}

func (m *formScreenModel[R]) View() string {
	switch m.screen.State() {
	case form.StateLoading:
		return components.TitledBox(m.heading(), m.spinner.View()+" Loading…", m.width)
	case form.StateLoadFailed:
		return components.ErrorBox("Could not load "+strings.ToLower(m.title), m.screen.LoadErr(), m.width)
	}
	if m.screen.NavigationPending() {
		return m.renderLeaveDialog()
	}

	var b strings.Builder
	b.WriteString(m.fields.View(components.BoxContentWidth(m.width)))
	switch {
	case m.screen.State() == form.StateSaving:
		b.WriteString("\n\n" + m.spinner.View() + " Saving…")
	case m.screen.Dirty():
		b.WriteString("\n\n" + WarningStyle.Render("● unsaved changes"))
	}
	out := components.TitledBox(m.heading(), b.String(), m.width)
	if msg := m.screen.Err(); msg != "" {
		out += "\n" + components.ErrorBox("Save failed", msg, m.width)
	}
	return out
}

func (m *formScreenModel[R]) renderLeaveDialog() string {
	message := "Leave this form? Unsaved changes will be lost."
	if dest, ok := m.screen.PendingDestination(); ok && !dest.Close {
		message = fmt.Sprintf("Go to %s? Unsaved changes will be lost.", dest.Path)
	}

	initial := m.screen.Initial()
	current := m.fields.Values()
	changed := form.ChangedFields(initial, current)
	diffs := make([]components.DiffRow, 0, len(changed))
	for _, name := range changed {
		diffs = append(diffs, components.DiffRow{
			Label: m.fields.label(name),
			From:  m.fields.display(name, initial[name]),
			To:    m.fields.display(name, current[name]),
		})
	}
	return components.ConfirmPreviewDialog("Discard changes?", message, nil, diffs, m.width)
}

func (m *formScreenModel[R]) Hints() []string {
	if m.screen.NavigationPending() {
		return []string{components.Hint("y", "Discard"), components.Hint("n", "Stay")}
	}
	switch m.screen.State() {
	case form.StateLoading, form.StateLoadFailed:
		return []string{components.Hint("esc", "Back")}
	case form.StateSaving:
		return []string{MutedStyle.Render("saving…")}
	}
	return []string{
		components.Hint("tab", "Next"),
		components.Hint("←/→", "Choose"),
		components.Hint("space", "Toggle"),
		components.Hint("ctrl+s", "Save"),
		components.Hint("esc", "Cancel"),
	}
}

// --- Payloads ---

// decodeValues turns field values into a request body of type T.
func decodeValues[T any](values form.Values) (T, error) {
	var out T
	data, err := json.Marshal(values)
	if err != nil {
		return out, fmt.Errorf("encode form: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode form: %w", err)
	}
	return out, nil
}

// deref adapts the pointer-returning client calls to form callbacks.
func deref[T any](p *T, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if p == nil {
		return zero, fmt.Errorf("empty response")
	}
	return *p, nil
}
