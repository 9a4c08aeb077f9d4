package ui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/Brasil-Rental-Karts/brk-cli/internal/api"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *api.Client) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, api.NewClient(srv.URL, "test-key")
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

// drain runs cmd and returns the messages it produced, flattening batches.
// Spinner ticks are dropped and timers longer than 300ms are
// abandoned so toasts never stall a test.
func drain(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(300 * time.Millisecond):
		return nil
	}
	switch m := msg.(type) {
	case nil, spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, drain(t, c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if typed, ok := m.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

func TestCenterBlockUniformPadsShortLines(t *testing.T) {
	out := centerBlockUniform("hi\nworld", 11)

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "   hi", lines[0])
	assert.Equal(t, "   world", lines[1])
}

func TestCenterBlockUniformLeavesWideLinesUnchanged(t *testing.T) {
	in := "0123456789"
	assert.Equal(t, in, centerBlockUniform(in, 5))
	assert.Equal(t, in, centerBlockUniform(in, 0))
}
