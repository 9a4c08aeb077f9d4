package form

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type season struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type stubValidator struct {
	errs    []string
	focused int
}

func (v *stubValidator) FieldErrors() []string { return v.errs }
func (v *stubValidator) FocusFirstInvalid()    { v.focused++ }

// drain runs cmd and every command it batches, returning the leaf messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// ready runs Init and feeds back every message until the screen settles.
func ready[R any](t *testing.T, s *Screen[R]) {
	t.Helper()
	pending := drain(s.Init())
	for len(pending) > 0 {
		msg := pending[0]
		pending = pending[1:]
		pending = append(pending, drain(s.Update(msg))...)
	}
}

func notifications(msgs []tea.Msg) []NotifyMsg {
	var out []NotifyMsg
	for _, m := range msgs {
		if n, ok := m.(NotifyMsg); ok {
			out = append(out, n)
		}
	}
	return out
}

func TestNewValidatesOptionsPerMode(t *testing.T) {
	_, err := New(Options[season]{})
	assert.ErrorIs(t, err, ErrMissingCreate)

	_, err = New(Options[season]{ID: "s-1", Update: func(string, any) (season, error) { return season{}, nil }})
	assert.ErrorIs(t, err, ErrMissingFetch)

	_, err = New(Options[season]{ID: "s-1", Fetch: func(string) (season, error) { return season{}, nil }})
	assert.ErrorIs(t, err, ErrMissingUpdate)
}

func TestCreateModeIsReadyWithoutNetwork(t *testing.T) {
	s, err := New(Options[season]{
		Create:   func(any) (season, error) { return season{}, nil },
		Defaults: Values{"status": "scheduled"},
	})
	require.NoError(t, err)
	assert.Equal(t, ModeCreate, s.Mode())

	cmd := s.Init()
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, PhaseAwaitingFirstRender, s.Phase())
	assert.Equal(t, Values{"status": "scheduled"}, s.Initial())

	// Changes during the first-render window never count.
	s.SetValues(Values{"status": "finished"})
	assert.False(t, s.Dirty())

	for _, msg := range drain(cmd) {
		s.Update(msg)
	}
	assert.Equal(t, PhaseInitialized, s.Phase())
	assert.True(t, s.Dirty())
}

func TestEditModeIgnoresChangesUntilInitialized(t *testing.T) {
	reg := NewUnloadRegistry()
	s, err := New(Options[season]{
		ID:     "s-1",
		Fetch:  func(string) (season, error) { return season{ID: "s-1", Name: "Season 1", Status: "scheduled"}, nil },
		Update: func(string, any) (season, error) { return season{}, nil },
		Unload: reg,
	})
	require.NoError(t, err)

	loaded := drain(s.Init())
	require.Len(t, loaded, 1)
	initCmd := s.Update(loaded[0])
	require.NotNil(t, initCmd)
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, PhaseAwaitingFirstRender, s.Phase())

	s.SetValues(Values{"id": "s-1", "name": "Season 2", "status": "scheduled"})
	assert.False(t, s.Dirty())
	assert.False(t, s.Guarding())
	assert.False(t, reg.ShouldPrompt())

	for _, msg := range drain(initCmd) {
		s.Update(msg)
	}
	assert.Equal(t, PhaseInitialized, s.Phase())
	assert.True(t, s.Dirty())
	assert.True(t, s.Guarding())
	assert.True(t, reg.ShouldPrompt())
}

func TestSubmitClearsDirtyBeforeDispatchResolves(t *testing.T) {
	calls := 0
	s, err := New(Options[season]{
		Create: func(any) (season, error) {
			calls++
			return season{ID: "new"}, nil
		},
	})
	require.NoError(t, err)
	ready(t, s)

	s.SetValues(Values{"name": "Season 1"})
	require.True(t, s.Dirty())
	require.True(t, s.Guarding())

	cmd := s.Submit(Values{"name": "Season 1"}, &stubValidator{})
	require.NotNil(t, cmd)
	assert.False(t, s.Dirty())
	assert.False(t, s.Guarding())
	assert.Equal(t, StateSaving, s.State())
	assert.Equal(t, 0, calls)

	// Edits reported mid-save do not re-arm the guard.
	s.SetValues(Values{"name": "Season 2"})
	assert.False(t, s.Dirty())
}

func TestSubmitFailureRearmsGuard(t *testing.T) {
	reg := NewUnloadRegistry()
	v := &stubValidator{}
	s, err := New(Options[season]{
		Create: func(any) (season, error) { return season{}, errors.New("boom") },
		Unload: reg,
	})
	require.NoError(t, err)
	ready(t, s)
	s.SetValues(Values{"name": "Season 1"})

	msgs := drain(s.Submit(Values{"name": "Season 1"}, v))
	require.Len(t, msgs, 1)
	out := drain(s.Update(msgs[0]))

	assert.True(t, s.Dirty())
	assert.Equal(t, StateError, s.State())
	assert.Equal(t, "boom", s.Err())
	assert.True(t, reg.ShouldPrompt())
	assert.Equal(t, 1, v.focused)
	require.Len(t, notifications(out), 1)
	assert.Equal(t, NotifyMsg{Level: NotifyError, Text: "boom"}, notifications(out)[0])
}

func TestSubmitFailureUsesConfiguredMessages(t *testing.T) {
	s, err := New(Options[season]{
		Create:       func(any) (season, error) { return season{}, errors.New(" ") },
		ErrorMessage: "Could not save season.",
	})
	require.NoError(t, err)
	ready(t, s)

	msgs := drain(s.Submit(Values{}, nil))
	out := drain(s.Update(msgs[0]))
	assert.Equal(t, "Could not save season.", s.Err())
	assert.Equal(t, "Could not save season.", notifications(out)[0].Text)
}

func TestResubmitAfterErrorIsAllowed(t *testing.T) {
	attempts := 0
	s, err := New(Options[season]{
		Create: func(any) (season, error) {
			attempts++
			if attempts == 1 {
				return season{}, errors.New("boom")
			}
			return season{ID: "s-1"}, nil
		},
	})
	require.NoError(t, err)
	ready(t, s)

	for _, msg := range drain(s.Submit(Values{"name": "x"}, nil)) {
		drain(s.Update(msg))
	}
	require.Equal(t, StateError, s.State())

	for _, msg := range drain(s.Submit(Values{"name": "x"}, nil)) {
		drain(s.Update(msg))
	}
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, "", s.Err())
	assert.Equal(t, 2, attempts)
}

func TestCreateModeDispatchesCreateOnly(t *testing.T) {
	var created, updated int
	var gotPayload any
	s, err := New(Options[season]{
		Create: func(p any) (season, error) {
			created++
			gotPayload = p
			return season{ID: "new"}, nil
		},
		Update: func(string, any) (season, error) {
			updated++
			return season{}, nil
		},
	})
	require.NoError(t, err)
	ready(t, s)

	drain(s.Submit(Values{"name": "x"}, nil))
	assert.Equal(t, 1, created)
	assert.Equal(t, 0, updated)
	assert.Equal(t, Values{"name": "x"}, gotPayload)
}

func TestEditModeDispatchesUpdateWithID(t *testing.T) {
	var created int
	var gotID string
	var gotPayload any
	s, err := New(Options[season]{
		ID:    "s-9",
		Fetch: func(id string) (season, error) { return season{ID: id, Name: "Old"}, nil },
		Create: func(any) (season, error) {
			created++
			return season{}, nil
		},
		Update: func(id string, p any) (season, error) {
			gotID = id
			gotPayload = p
			return season{ID: id}, nil
		},
		ToPayload: func(v Values) (any, error) {
			return map[string]any{"name": v["name"], "source": "form"}, nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, ModeEdit, s.Mode())
	ready(t, s)

	drain(s.Submit(Values{"name": "New"}, nil))
	assert.Equal(t, 0, created)
	assert.Equal(t, "s-9", gotID)
	assert.Equal(t, map[string]any{"name": "New", "source": "form"}, gotPayload)
}

func TestValidationErrorsShortCircuitDispatch(t *testing.T) {
	calls := 0
	v := &stubValidator{errs: []string{"name"}}
	s, err := New(Options[season]{
		Create: func(any) (season, error) {
			calls++
			return season{}, nil
		},
	})
	require.NoError(t, err)
	ready(t, s)
	s.SetValues(Values{"status": "scheduled"})

	cmd := s.Submit(Values{"status": "scheduled"}, v)
	assert.Nil(t, cmd)
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, v.focused)
	assert.Equal(t, StateReady, s.State())
	assert.True(t, s.Dirty())
}

func TestTransformErrorIsASubmissionFailure(t *testing.T) {
	calls := 0
	s, err := New(Options[season]{
		Create: func(any) (season, error) {
			calls++
			return season{}, nil
		},
		ToPayload: func(Values) (any, error) { return nil, errors.New("fee must be a number") },
	})
	require.NoError(t, err)
	ready(t, s)

	out := drain(s.Submit(Values{"fee": "abc"}, nil))
	assert.Equal(t, 0, calls)
	assert.Equal(t, StateError, s.State())
	assert.Equal(t, "fee must be a number", s.Err())
	assert.True(t, s.Dirty())
	require.Len(t, notifications(out), 1)
}

func TestSuccessNotifiesAndHandsResultToCallback(t *testing.T) {
	var got season
	reg := NewUnloadRegistry()
	s, err := New(Options[season]{
		Create:         func(any) (season, error) { return season{ID: "s-1", Name: "Season 1"}, nil },
		SuccessMessage: "Season created.",
		OnSuccess: func(r season) tea.Cmd {
			got = r
			return nil
		},
		Unload: reg,
	})
	require.NoError(t, err)
	ready(t, s)
	s.SetValues(Values{"name": "Season 1"})

	msgs := drain(s.Submit(Values{"name": "Season 1"}, nil))
	out := drain(s.Update(msgs[0]))

	assert.Equal(t, "s-1", got.ID)
	assert.True(t, s.Saved())
	assert.Equal(t, StateReady, s.State())
	assert.False(t, reg.ShouldPrompt())
	assert.Equal(t, []NotifyMsg{{Level: NotifySuccess, Text: "Season created."}}, notifications(out))

	// Later edits on a saved screen never prompt.
	s.SetValues(Values{"name": "Season 2"})
	assert.False(t, s.Guarding())
}

func TestCancelWithDirtyFormAsksThenCancelsOnce(t *testing.T) {
	cancels := 0
	s, err := New(Options[season]{
		Create:   func(any) (season, error) { return season{}, nil },
		Defaults: Values{"status": "scheduled"},
		OnCancel: func() tea.Cmd {
			cancels++
			return nil
		},
	})
	require.NoError(t, err)
	ready(t, s)

	s.SetValues(Values{"status": "scheduled", "name": ""})
	assert.False(t, s.Dirty())
	s.SetValues(Values{"status": "scheduled", "name": "Season 1"})
	assert.True(t, s.Dirty())

	s.Cancel()
	assert.True(t, s.NavigationPending())
	dest, ok := s.PendingDestination()
	require.True(t, ok)
	assert.True(t, dest.Close)
	assert.Equal(t, 0, cancels)

	s.ConfirmNavigation()
	assert.Equal(t, 1, cancels)
	assert.False(t, s.NavigationPending())

	s.ConfirmNavigation()
	assert.Equal(t, 1, cancels)
}

func TestCancelWithCleanFormLeavesImmediately(t *testing.T) {
	cancels := 0
	s, err := New(Options[season]{
		Create:   func(any) (season, error) { return season{}, nil },
		OnCancel: func() tea.Cmd {
			cancels++
			return nil
		},
	})
	require.NoError(t, err)
	ready(t, s)

	s.Cancel()
	assert.Equal(t, 1, cancels)
	assert.False(t, s.NavigationPending())
}

func TestCancelNavigationKeepsEdits(t *testing.T) {
	s, err := New(Options[season]{Create: func(any) (season, error) { return season{}, nil }})
	require.NoError(t, err)
	ready(t, s)
	s.SetValues(Values{"name": "x"})

	s.Cancel()
	s.CancelNavigation()
	assert.False(t, s.NavigationPending())
	assert.True(t, s.Dirty())
	assert.True(t, s.Guarding())
}

func TestEditModeUntouchedNeverPrompts(t *testing.T) {
	reg := NewUnloadRegistry()
	s, err := New(Options[season]{
		ID:     "s-1",
		Fetch:  func(string) (season, error) { return season{Name: "Old"}, nil },
		Update: func(string, any) (season, error) { return season{}, nil },
		ToForm: func(r season) (Values, error) { return Values{"name": r.Name}, nil },
		Unload: reg,
	})
	require.NoError(t, err)

	cmd := s.Init()
	assert.Equal(t, StateLoading, s.State())
	loaded := drain(cmd)
	require.Len(t, loaded, 1)
	next := drain(s.Update(loaded[0]))
	assert.Equal(t, Values{"name": "Old"}, s.Initial())
	s.SetValues(Values{"name": "Old"})
	for _, msg := range next {
		s.Update(msg)
	}
	s.SetValues(Values{"name": "Old"})

	assert.False(t, s.Dirty())
	assert.False(t, reg.ShouldPrompt())
	assert.Equal(t, 0, reg.Len())
}

func TestEditModeDefaultProjectionUsesJSONShape(t *testing.T) {
	s, err := New(Options[season]{
		ID:     "s-1",
		Fetch:  func(id string) (season, error) { return season{ID: id, Name: "Old", Status: "scheduled"}, nil },
		Update: func(string, any) (season, error) { return season{}, nil },
	})
	require.NoError(t, err)
	ready(t, s)

	assert.Equal(t, Values{"id": "s-1", "name": "Old", "status": "scheduled"}, s.Initial())
}

func TestLoadFailureIsScreenLevel(t *testing.T) {
	s, err := New(Options[season]{
		ID:     "s-1",
		Fetch:  func(string) (season, error) { return season{}, errors.New("not found") },
		Update: func(string, any) (season, error) { return season{}, nil },
	})
	require.NoError(t, err)
	ready(t, s)

	assert.Equal(t, StateLoadFailed, s.State())
	assert.Equal(t, "not found", s.LoadErr())
	assert.Nil(t, s.Submit(Values{}, nil))
}

func TestMessagesAfterCloseAreDropped(t *testing.T) {
	reg := NewUnloadRegistry()
	s, err := New(Options[season]{
		ID:     "s-1",
		Fetch:  func(string) (season, error) { return season{Name: "Old"}, nil },
		Update: func(string, any) (season, error) { return season{}, nil },
		Unload: reg,
	})
	require.NoError(t, err)

	loaded := drain(s.Init())
	s.Close()
	s.Close()
	assert.Nil(t, s.Update(loaded[0]))
	assert.Equal(t, StateLoading, s.State())
	assert.Equal(t, 0, reg.Len())
}

func TestMessagesForOtherScreensAreIgnored(t *testing.T) {
	opts := Options[season]{
		ID:     "s-1",
		Fetch:  func(string) (season, error) { return season{Name: "Old"}, nil },
		Update: func(string, any) (season, error) { return season{}, nil },
	}
	a, err := New(opts)
	require.NoError(t, err)
	b, err := New(opts)
	require.NoError(t, err)
	require.NotEqual(t, a.ID(), b.ID())

	a.Init()
	loadedForB := drain(b.Init())
	assert.Nil(t, a.Update(loadedForB[0]))
	assert.Equal(t, StateLoading, a.State())
}

func TestRouteNavigationBlockedWhileDirty(t *testing.T) {
	blocker := &fakeBlocker{current: "/seasons/new"}
	s, err := New(Options[season]{
		Create:  func(any) (season, error) { return season{}, nil },
		Blocker: blocker,
	})
	require.NoError(t, err)
	ready(t, s)

	assert.True(t, blocker.Navigate("/seasons/new"))
	assert.Equal(t, 0, blocker.consulted)
	s.SetValues(Values{"name": "x"})
	assert.False(t, blocker.Navigate("/stages"))
	assert.True(t, s.NavigationPending())

	assert.Nil(t, s.ConfirmNavigation())
	assert.Equal(t, "/stages", blocker.current)
}
