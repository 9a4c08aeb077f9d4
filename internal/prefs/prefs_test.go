package prefs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Equal(t, Defaults(), p)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	want := Prefs{PageSize: 50, ToastSeconds: 5, LastChampionship: "ch-1"}

	require.NoError(t, Save(path, want))
	assert.Equal(t, want, Load(path))
}

func TestLoadInvalidTOMLFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("page_size = [oops"), 0o644))

	assert.Equal(t, Defaults(), Load(path))
}

func TestLoadClampsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("page_size = 5000\ntoast_seconds = -1\n"), 0o644))

	p := Load(path)
	assert.Equal(t, maxPageSize, p.PageSize)
	assert.Equal(t, defaultToastSeconds, p.ToastSeconds)
}

func TestLoadExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, Save("~/prefs.toml", Prefs{LastChampionship: "ch-9"}))
	_, err := os.Stat(filepath.Join(home, "prefs.toml"))
	require.NoError(t, err)
	assert.Equal(t, "ch-9", Load("~/prefs.toml").LastChampionship)
}

func TestToastDuration(t *testing.T) {
	assert.Equal(t, 3*time.Second, Defaults().ToastDuration())
}
