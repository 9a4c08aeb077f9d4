package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeasonOptions(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/seasons/s-1/categories":
			w.Write(jsonResponse([]map[string]any{{"id": "cat-1", "name": "Graduados"}}))
		case "/seasons/s-1/stages":
			w.Write(jsonResponse([]map[string]any{{"id": "st-1", "name": "Etapa 1"}, {"id": "st-2", "name": "Etapa 2"}}))
		default:
			http.NotFound(w, r)
		}
	})

	opts, err := client.LoadSeasonOptions(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Len(t, opts.Categories, 1)
	assert.Len(t, opts.Stages, 2)
}

func TestLoadSeasonOptionsFailure(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/seasons/s-1/stages" {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"no access"}}`))
			return
		}
		w.Write(jsonResponse([]map[string]any{}))
	})

	_, err := client.LoadSeasonOptions(context.Background(), "s-1")
	require.Error(t, err)
	assert.Equal(t, "stages: FORBIDDEN: no access", err.Error())
}

func TestLoadSeasonOptionsHonoursDeadline(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/seasons/s-1/stages" {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
			return
		}
		w.Write(jsonResponse([]map[string]any{}))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	started := time.Now()
	_, err := client.LoadSeasonOptions(ctx, "s-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	assert.Less(t, time.Since(started), 2*time.Second)
}
