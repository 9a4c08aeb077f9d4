package form

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Validator is implemented by whatever renders the fields.
type Validator interface {
	// FieldErrors lists invalid field names in render order.
	FieldErrors() []string
	// FocusFirstInvalid brings the first invalid field into view.
	FocusFirstInvalid()
}

// Submit validates and dispatches values. Dirtiness is cleared before the
// returned command runs, so the guard never blocks a save in flight.
func (s *Screen[R]) Submit(values Values, v Validator) tea.Cmd {
	if s.closed {
		return nil
	}
	switch s.state {
	case StateReady, StateError:
	default:
		return nil
	}

	s.validator = v
	if v != nil && len(v.FieldErrors()) > 0 {
		v.FocusFirstInvalid()
		return nil
	}

	s.err = ""
	s.state = StateSaving
	s.dirty = false
	s.current = values.Clone()
	s.syncGuard()

	payload, err := s.opts.ToPayload(values.Clone())
	if err != nil {
		return s.fail(err)
	}

	screenID := s.id
	mode := s.mode
	id := s.opts.ID
	create := s.opts.Create
	update := s.opts.Update
	s.log.Debug("submitting", zap.String("record", id))
	return func() tea.Msg {
		var (
			result R
			err    error
		)
		if mode == ModeEdit {
			result, err = update(id, payload)
		} else {
			result, err = create(payload)
		}
		if err != nil {
			return SubmittedMsg{ScreenID: screenID, Err: err}
		}
		return SubmittedMsg{ScreenID: screenID, Result: result}
	}
}

func (s *Screen[R]) succeed(result any) tea.Cmd {
	s.state = StateReady
	s.saved = true
	s.dirty = false
	s.syncGuard()

	text := s.opts.SuccessMessage
	if text == "" {
		text = defaultSuccessMessage
	}
	cmds := []tea.Cmd{s.notify(NotifySuccess, text)}
	if s.opts.OnSuccess != nil {
		record, _ := result.(R)
		cmds = append(cmds, s.opts.OnSuccess(record))
	}
	return tea.Batch(cmds...)
}

func (s *Screen[R]) fail(err error) tea.Cmd {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = s.opts.ErrorMessage
	}
	if msg == "" {
		msg = defaultErrorMessage
	}
	s.err = msg
	s.state = StateError
	s.dirty = true
	s.syncGuard()
	s.log.Warn("submit failed", zap.String("record", s.opts.ID), zap.Error(err))

	if s.validator != nil {
		s.validator.FocusFirstInvalid()
	}
	text := s.opts.ErrorMessage
	if text == "" {
		text = msg
	}
	return s.notify(NotifyError, text)
}
