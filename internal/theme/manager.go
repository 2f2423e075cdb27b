package theme

import (
	"errors"
	"fmt"
	"sort"
)

var ErrThemeNotFound = errors.New("theme not found")

type Manager struct {
	themes map[string]*Theme
}

func NewManager() *Manager {
	return &Manager{themes: GetPredefinedThemes()}
}

func (m *Manager) GetTheme(name string) (*Theme, error) {
	t, ok := m.themes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}
	return t, nil
}

// Resolve returns the named theme, or the default theme for an empty name.
func (m *Manager) Resolve(name string) (*Theme, error) {
	if name == "" {
		return DefaultTheme(), nil
	}
	return m.GetTheme(name)
}

func (m *Manager) ListThemes() []string {
	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var globalManager = NewManager()

func GetTheme(name string) (*Theme, error) {
	return globalManager.GetTheme(name)
}

func Resolve(name string) (*Theme, error) {
	return globalManager.Resolve(name)
}

func ListThemes() []string {
	return globalManager.ListThemes()
}
