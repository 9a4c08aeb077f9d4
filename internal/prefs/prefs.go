// Package prefs stores console preferences in ~/.config/brk/prefs.toml.
// A missing or unreadable file yields defaults.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for the console.
type Prefs struct {
	PageSize         int    `toml:"page_size"`
	ToastSeconds     int    `toml:"toast_seconds"`
	LastChampionship string `toml:"last_championship"`
}

const (
	defaultPrefsPath    = "~/.config/brk/prefs.toml"
	defaultPageSize     = 20
	defaultToastSeconds = 3
	maxPageSize         = 200
)

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{PageSize: defaultPageSize, ToastSeconds: defaultToastSeconds}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// ToastDuration is how long a notification stays on screen.
func (p Prefs) ToastDuration() time.Duration {
	return time.Duration(p.ToastSeconds) * time.Second
}

// Load reads preferences from path, falling back to defaults on any problem.
func Load(path string) Prefs {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults()
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return Defaults()
	}

	p := Defaults()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults()
	}
	return p.normalized()
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func (p Prefs) normalized() Prefs {
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	if p.ToastSeconds <= 0 {
		p.ToastSeconds = defaultToastSeconds
	}
	p.LastChampionship = strings.TrimSpace(p.LastChampionship)
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
