package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Brasil-Rental-Karts/brk-cli/internal/api"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/config"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/form"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/prefs"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/router"
	"github.com/Brasil-Rental-Karts/brk-cli/internal/ui/components"
)

// --- Tab Constants ---

const (
	tabChampionships = 0
	tabSeasons       = 1
	tabCategories    = 2
	tabStages        = 3
	tabRegistrations = 4
	tabPenalties     = 5
	tabStaff         = 6
	tabCount         = 7
)

// --- Messages ---

type clearToastMsg struct{}

// quitPromptMsg replaces a quit while a form still guards unsaved edits.
type quitPromptMsg struct{}

type championshipResolvedMsg struct {
	id   string
	name string
	err  error
}

type appToast struct {
	level string
	text  string
}

// AppOptions carries the optional collaborators of the console.
type AppOptions struct {
	Prefs     prefs.Prefs
	PrefsPath string
	Logger    *zap.Logger
}

// --- App Model ---

// App is the root TUI model. The router owns the active path; tabs and
// forms follow it.
type App struct {
	client    *api.Client
	config    *config.Config
	prefs     prefs.Prefs
	prefsPath string
	log       *zap.Logger

	router    *router.Router
	unload    *form.UnloadRegistry
	resources []*resourceModel

	tab      int
	route    string
	scope    scope
	startCmd tea.Cmd

	width       int
	height      int
	helpOpen    bool
	quitConfirm bool
	toast       *appToast
}

// NewApp creates the root application model.
func NewApp(client *api.Client, cfg *config.Config, opts AppOptions) App {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	p := opts.Prefs
	if p.PageSize <= 0 || p.ToastSeconds <= 0 {
		p = prefs.Defaults()
	}

	a := App{
		client:    client,
		config:    cfg,
		prefs:     p,
		prefsPath: opts.PrefsPath,
		log:       log.Named("ui"),
		router:    router.New("/championships"),
		unload:    form.NewUnloadRegistry(),
	}
	host := formHost{blocker: a.router, unload: a.unload, log: a.log}
	for _, def := range resourceDefs() {
		a.resources = append(a.resources, newResourceModel(def, client, host, p.PageSize))
	}
	if id := strings.TrimSpace(p.LastChampionship); id != "" {
		a.scope.championshipID = id
	}
	a.startCmd = a.activate(a.router.Current())
	return a
}

// QuitFilter is installed with tea.WithFilter. It turns a quit into a
// confirmation prompt while any form still has unsaved edits.
func (a App) QuitFilter() func(tea.Model, tea.Msg) tea.Msg {
	registry := a.unload
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if _, ok := msg.(tea.QuitMsg); !ok {
			return msg
		}
		if registry != nil && registry.ShouldPrompt() {
			return quitPromptMsg{}
		}
		return msg
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.startCmd}
	if a.scope.championshipID != "" && a.client != nil {
		cmds = append(cmds, a.resolveChampionshipCmd(a.scope.championshipID))
	}
	return tea.Batch(cmds...)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		for _, r := range a.resources {
			r.setSize(msg.Width, msg.Height)
		}
		return a, nil

	case clearToastMsg:
		a.toast = nil
		return a, nil
	case quitPromptMsg:
		a.quitConfirm = true
		return a, nil
	case form.NotifyMsg:
		return a, a.setToast(string(msg.Level), msg.Text)

	case navigateMsg:
		if a.router.Navigate(msg.to) == router.Blocked {
			a.log.Debug("navigation blocked", zap.String("to", msg.to))
		}
	case leaveMsg:
		if a.router.Back() == router.Unchanged {
			a.router.Replace(msg.fallback)
		}
	case selectScopeMsg:
		cmd = a.applyScope(msg)
	case championshipResolvedMsg:
		cmd = a.applyResolvedChampionship(msg)

	case listLoadedMsg:
		cmd = a.resourceByKey(msg.key).Update(msg)
	case optionsLoadedMsg:
		cmd = a.resourceByKey(msg.key).Update(msg)

	case tea.KeyMsg:
		model, keyCmd, handled := a.handleKeys(msg)
		if handled {
			return model, keyCmd
		}
		cmd = keyCmd

	default:
		cmd = a.active().Update(msg)
	}
	return a, tea.Batch(cmd, a.syncRoute())
}

// handleKeys processes global keys. handled reports that the key must not
// reach the route sync.
func (a *App) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if a.quitConfirm {
		switch {
		case isConfirm(msg):
			a.closeForms()
			return *a, tea.Quit, true
		case isDeny(msg):
			a.quitConfirm = false
		}
		return *a, nil, true
	}
	if a.helpOpen {
		if isBack(msg) || isKey(msg, "?") {
			a.helpOpen = false
		}
		return *a, nil, true
	}

	res := a.active()
	onForm := res.onForm()
	if isForceQuit(msg) {
		return a.requestQuit()
	}
	if !onForm {
		switch {
		case isKey(msg, "?"):
			a.helpOpen = true
			return *a, nil, true
		case isQuit(msg):
			return a.requestQuit()
		case isKey(msg, "left"):
			a.router.Navigate(a.tabPath((a.tab - 1 + tabCount) % tabCount))
			return *a, nil, false
		case isKey(msg, "right"):
			a.router.Navigate(a.tabPath((a.tab + 1) % tabCount))
			return *a, nil, false
		}
	}
	if idx, ok := tabIndexForKey(msg, onForm); ok && !res.pending() {
		a.router.Navigate(a.tabPath(idx))
		return *a, nil, false
	}
	return *a, res.Update(msg), false
}

func (a *App) requestQuit() (tea.Model, tea.Cmd, bool) {
	if a.unload.ShouldPrompt() {
		a.quitConfirm = true
		return *a, nil, true
	}
	return *a, tea.Quit, true
}

// --- Routing ---

func (a *App) tabPath(tab int) string {
	if tab < 0 || tab >= len(a.resources) {
		return "/"
	}
	return a.resources[tab].def.listPath()
}

func (a *App) active() *resourceModel {
	return a.resources[a.tab]
}

func (a *App) resourceByKey(key string) *resourceModel {
	for _, r := range a.resources {
		if r.def.key == key {
			return r
		}
	}
	return a.active()
}

// syncRoute opens whatever the router now points at.
func (a *App) syncRoute() tea.Cmd {
	current := a.router.Current()
	if current == a.route {
		return nil
	}
	return a.activate(current)
}

func (a *App) activate(path string) tea.Cmd {
	tab := -1
	section := router.Section(path)
	for i, r := range a.resources {
		if r.def.key == section {
			tab = i
			break
		}
	}
	if tab < 0 {
		a.log.Debug("unknown route", zap.String("path", path))
		tab = tabChampionships
	}
	if a.tab != tab && a.route != "" {
		a.active().closeForm()
	}
	a.tab = tab
	a.route = path
	return a.resources[tab].open(path, a.scope)
}

func (a *App) closeForms() {
	for _, r := range a.resources {
		r.closeForm()
	}
}

// --- Scope ---

func (a *App) applyScope(msg selectScopeMsg) tea.Cmd {
	switch msg.level {
	case needChampionship:
		if a.scope.championshipID != msg.id {
			a.scope.seasonID, a.scope.seasonName = "", ""
		}
		a.scope.championshipID, a.scope.championshipName = msg.id, msg.name
		a.prefs.LastChampionship = msg.id
		if a.prefsPath != "" {
			if err := prefs.Save(a.prefsPath, a.prefs); err != nil {
				a.log.Warn("save prefs", zap.Error(err))
			}
		}
	case needSeason:
		a.scope.seasonID, a.scope.seasonName = msg.id, msg.name
	default:
		return nil
	}
	a.log.Info("scope changed", zap.String("championship", a.scope.championshipID), zap.String("season", a.scope.seasonID))
	return a.setToast("success", fmt.Sprintf("Working on %s.", a.scope.label()))
}

func (a App) resolveChampionshipCmd(id string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ch, err := client.GetChampionship(id)
		if err != nil {
			return championshipResolvedMsg{id: id, err: err}
		}
		return championshipResolvedMsg{id: id, name: ch.Name}
	}
}

func (a *App) applyResolvedChampionship(msg championshipResolvedMsg) tea.Cmd {
	if msg.id != a.scope.championshipID {
		return nil
	}
	if msg.err != nil {
		a.log.Warn("restore championship", zap.String("id", msg.id), zap.Error(msg.err))
		a.scope = scope{}
		return a.setToast("warning", "Last championship is unavailable; select one again.")
	}
	a.scope.championshipName = msg.name
	return nil
}

// --- Toasts ---

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(a.prefs.ToastDuration(), func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	switch a.toast.level {
	case "success":
		title = "Success"
	case "warning":
		title = "Warning"
	case "error":
		return components.ErrorBox("Error", a.toast.text, a.width)
	}
	return components.TitledBox(title, a.toast.text, a.width)
}

// --- View ---

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	tabs := centerBlockUniform(a.renderTabs(), a.width)
	scopeText := a.scope.label()
	if a.config != nil && a.config.Email != "" {
		scopeText = a.config.Email + " · " + scopeText
	}
	scopeLine := centerBlockUniform(ScopeStyle.Render(components.SanitizeOneLine(scopeText)), a.width)

	content := a.active().View()
	switch {
	case a.quitConfirm:
		content = a.renderQuitConfirm()
	case a.helpOpen:
		content = a.renderHelp()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}
	return fmt.Sprintf("%s\n%s\n%s\n\n%s\n\n\n%s%s", banner, tabs, scopeLine, content, hints, feedback)
}

func (a App) renderTabs() string {
	segments := make([]string, 0, len(a.resources))
	for i, r := range a.resources {
		label := fmt.Sprintf("%d %s", i+1, r.def.title)
		if i == a.tab {
			segments = append(segments, TabActiveStyle.Render(label))
		} else {
			segments = append(segments, TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{components.Hint("y", "Quit"), components.Hint("n", "Stay")}
	}
	if a.helpOpen {
		return []string{components.Hint("esc", "Close")}
	}
	hints := a.active().Hints()
	if a.active().onForm() {
		return append(hints, components.Hint("alt+1-7", "Tabs"))
	}
	return append(hints,
		components.Hint("1-7", "Tabs"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	)
}

func (a App) renderHelp() string {
	lines := []string{MutedStyle.Render("esc to close"), ""}
	for _, hint := range a.active().Hints() {
		lines = append(lines, "  "+hint)
	}
	lines = append(lines,
		"",
		"  "+components.Hint("1-7", "Switch tab (alt+1-7 inside a form)"),
		"  "+components.Hint("←/→", "Previous or next tab"),
		"  "+components.Hint("ctrl+c", "Quit"),
	)
	return components.Indent(components.TitledBox("Help", strings.Join(lines, "\n"), a.width), 1)
}

func (a App) renderQuitConfirm() string {
	body := "You have unsaved changes. Quit anyway?"
	return components.Indent(components.ConfirmDialog("Quit", body), 1)
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		w := lipgloss.Width(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
