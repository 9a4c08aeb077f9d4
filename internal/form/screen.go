package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mode says whether a screen creates a record or edits one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// State is the lifecycle state of a screen.
type State int

const (
	StateLoading State = iota
	StateReady
	StateSaving
	StateError
	// StateLoadFailed means the initial fetch failed and there is no form.
	StateLoadFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSaving:
		return "saving"
	case StateError:
		return "error"
	case StateLoadFailed:
		return "load_failed"
	}
	return "unknown"
}

// Phase gates dirty checking until the rendering layer has populated inputs.
type Phase int

const (
	PhaseAwaitingFirstRender Phase = iota
	PhaseInitialized
)

var (
	ErrMissingCreate = errors.New("form: create mode requires a Create func")
	ErrMissingUpdate = errors.New("form: edit mode requires an Update func")
	ErrMissingFetch  = errors.New("form: edit mode requires a Fetch func")
)

const (
	defaultSuccessMessage = "Saved."
	defaultErrorMessage   = "Save failed."
)

// Options configures a Screen. R is the record type returned by the backend.
type Options[R any] struct {
	// ID selects edit mode when non-empty.
	ID string

	Fetch  func(id string) (R, error)
	Create func(payload any) (R, error)
	Update func(id string, payload any) (R, error)

	// ToForm turns a fetched record into field values. Defaults to the JSON
	// projection of the record.
	ToForm func(R) (Values, error)
	// ToPayload turns field values into the request body. Defaults to the
	// values themselves.
	ToPayload func(Values) (any, error)

	// Defaults seed the form in create mode.
	Defaults Values

	OnSuccess func(R) tea.Cmd
	OnCancel  func() tea.Cmd

	SuccessMessage string
	ErrorMessage   string

	Blocker Blocker
	Unload  UnloadHooks
	Logger  *zap.Logger
}

// Screen drives one create/edit screen from load to save.
type Screen[R any] struct {
	id    string
	opts  Options[R]
	mode  Mode
	log   *zap.Logger
	guard *Guard

	state   State
	phase   Phase
	initial Values
	current Values
	dirty   bool
	saved   bool
	err     string
	loadErr string

	validator Validator
	closed    bool
}

// New validates opts and builds a screen. The mode is fixed here.
func New[R any](opts Options[R]) (*Screen[R], error) {
	mode := ModeCreate
	if strings.TrimSpace(opts.ID) != "" {
		mode = ModeEdit
	}
	switch mode {
	case ModeCreate:
		if opts.Create == nil {
			return nil, ErrMissingCreate
		}
	case ModeEdit:
		if opts.Fetch == nil {
			return nil, ErrMissingFetch
		}
		if opts.Update == nil {
			return nil, ErrMissingUpdate
		}
	}
	if opts.ToForm == nil {
		opts.ToForm = Project[R]
	}
	if opts.ToPayload == nil {
		opts.ToPayload = func(v Values) (any, error) { return v, nil }
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.NewString()
	return &Screen[R]{
		id:      id,
		opts:    opts,
		mode:    mode,
		log:     log.With(zap.String("screen", id), zap.Stringer("mode", mode)),
		guard:   NewGuard(opts.Blocker, opts.Unload),
		state:   StateLoading,
		phase:   PhaseAwaitingFirstRender,
		initial: Values{},
		current: Values{},
	}, nil
}

// --- Accessors ---

func (s *Screen[R]) ID() string { return s.id }
func (s *Screen[R]) Mode() Mode { return s.mode }
func (s *Screen[R]) RecordID() string { return s.opts.ID }
func (s *Screen[R]) State() State { return s.state }
func (s *Screen[R]) Phase() Phase { return s.phase }
func (s *Screen[R]) Dirty() bool { return s.dirty }
func (s *Screen[R]) Saved() bool { return s.saved }
func (s *Screen[R]) Err() string { return s.err }
func (s *Screen[R]) LoadErr() string { return s.loadErr }
func (s *Screen[R]) Closed() bool { return s.closed }

// Initial returns a copy of the snapshot taken once data was available.
func (s *Screen[R]) Initial() Values {
	return s.initial.Clone()
}

// Changed lists the fields that differ from the snapshot.
func (s *Screen[R]) Changed() []string {
	return ChangedFields(s.initial, s.current)
}

// NavigationPending reports whether a leave confirmation is open.
func (s *Screen[R]) NavigationPending() bool {
	return s.guard.Pending()
}

// PendingDestination returns where the user tried to go.
func (s *Screen[R]) PendingDestination() (Destination, bool) {
	return s.guard.Destination()
}

// Guarding reports whether leaving now would ask for confirmation.
func (s *Screen[R]) Guarding() bool {
	return s.guard.Armed()
}

// --- Lifecycle ---

// Init starts the screen: create mode is ready immediately, edit mode fetches.
func (s *Screen[R]) Init() tea.Cmd {
	if s.closed {
		return nil
	}
	if s.mode == ModeCreate {
		s.setSnapshot(s.opts.Defaults)
		return s.initializeCmd()
	}
	s.state = StateLoading
	id := s.opts.ID
	fetch := s.opts.Fetch
	toForm := s.opts.ToForm
	screenID := s.id
	return func() tea.Msg {
		record, err := fetch(id)
		if err != nil {
			return LoadedMsg{ScreenID: screenID, Err: err}
		}
		values, err := toForm(record)
		if err != nil {
			return LoadedMsg{ScreenID: screenID, Err: fmt.Errorf("prepare form: %w", err)}
		}
		return LoadedMsg{ScreenID: screenID, Values: values}
	}
}

// Update consumes messages addressed to this screen and ignores the rest.
func (s *Screen[R]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case LoadedMsg:
		if !s.owns(msg.ScreenID) || s.state != StateLoading {
			return nil
		}
		if msg.Err != nil {
			s.state = StateLoadFailed
			s.loadErr = msg.Err.Error()
			s.log.Warn("load failed", zap.String("record", s.opts.ID), zap.Error(msg.Err))
			return nil
		}
		s.setSnapshot(msg.Values)
		return s.initializeCmd()
	case InitializedMsg:
		if !s.owns(msg.ScreenID) || s.phase == PhaseInitialized {
			return nil
		}
		s.phase = PhaseInitialized
		s.recompute()
		return nil
	case SubmittedMsg:
		if !s.owns(msg.ScreenID) || s.state != StateSaving {
			return nil
		}
		if msg.Err != nil {
			return s.fail(msg.Err)
		}
		return s.succeed(msg.Result)
	}
	return nil
}

// SetValues reports the live field values.
func (s *Screen[R]) SetValues(current Values) {
	if s.closed {
		return
	}
	s.current = current.Clone()
	s.recompute()
}

// Cancel is the screen's own leave intent. OnCancel runs now when nothing is
// at stake, otherwise after ConfirmNavigation.
func (s *Screen[R]) Cancel() tea.Cmd {
	if s.closed {
		return nil
	}
	if !s.guard.Attempt(Destination{Close: true}) {
		return nil
	}
	return s.onCancel()
}

// ConfirmNavigation lets the pending navigation through once.
func (s *Screen[R]) ConfirmNavigation() tea.Cmd {
	dest, ok := s.guard.Confirm()
	if !ok {
		return nil
	}
	s.log.Debug("navigation confirmed", zap.String("to", dest.Path), zap.Bool("close", dest.Close))
	if dest.Close {
		return s.onCancel()
	}
	return nil
}

// CancelNavigation keeps the user on the screen.
func (s *Screen[R]) CancelNavigation() {
	s.guard.Cancel()
}

// Close tears the screen down and releases every guard registration.
func (s *Screen[R]) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.guard.Close()
}

// --- Internals ---

func (s *Screen[R]) owns(screenID string) bool {
	return !s.closed && screenID == s.id
}

func (s *Screen[R]) setSnapshot(values Values) {
	s.initial = values.Clone()
	s.current = s.initial.Clone()
	s.state = StateReady
	s.phase = PhaseAwaitingFirstRender
	s.dirty = false
	s.syncGuard()
}

func (s *Screen[R]) initializeCmd() tea.Cmd {
	screenID := s.id
	return func() tea.Msg {
		return InitializedMsg{ScreenID: screenID}
	}
}

func (s *Screen[R]) recompute() {
	if s.phase != PhaseInitialized {
		return
	}
	switch s.state {
	case StateLoading, StateLoadFailed, StateSaving:
		return
	}
	s.dirty = HasChanges(s.initial, s.current)
	s.syncGuard()
}

func (s *Screen[R]) syncGuard() {
	s.guard.Sync(s.dirty && s.state != StateSaving && !s.saved)
}

func (s *Screen[R]) onCancel() tea.Cmd {
	if s.opts.OnCancel == nil {
		return nil
	}
	return s.opts.OnCancel()
}

func (s *Screen[R]) notify(level NotifyLevel, text string) tea.Cmd {
	return func() tea.Msg {
		return NotifyMsg{Level: level, Text: text}
	}
}

// Project is the default ToForm: the record's JSON shape as values.
func Project[R any](record R) (Values, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	values := Values{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return values, nil
}
