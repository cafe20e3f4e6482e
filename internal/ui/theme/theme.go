// Package theme holds the colors, styles and symbols used for terminal output.
package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme supplies every visual element the CLI renders
type Theme interface {
	Name() string
	Palette() ColorPalette
	Styles() Styles
	Symbols() Symbols
}

// ColorPalette is the set of colors a theme is built from
type ColorPalette struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	Text         lipgloss.AdaptiveColor
	TextMuted    lipgloss.AdaptiveColor
	TextFaint    lipgloss.AdaptiveColor
	TextEmphasis lipgloss.AdaptiveColor

	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
}

// Styles are the rendered lipgloss styles of a theme
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Header    lipgloss.Style
	SubHeader lipgloss.Style

	Bold     lipgloss.Style
	Muted    lipgloss.Style
	Faint    lipgloss.Style
	Emphasis lipgloss.Style

	ListItem   lipgloss.Style
	ListBullet lipgloss.Style
	Selected   lipgloss.Style
	Cursor     lipgloss.Style

	Key       lipgloss.Style
	Value     lipgloss.Style
	Separator lipgloss.Style

	Spinner  lipgloss.Style
	Progress lipgloss.Style
}

// Symbols are the glyphs prefixed to messages and list items
type Symbols struct {
	Success    string
	Error      string
	Warning    string
	Info       string
	Arrow      string
	Bullet     string
	Pending    string
	InProgress string
}

var (
	current Theme
	mu      sync.RWMutex
)

// Current returns the active theme
func Current() Theme {
	mu.RLock()
	t := current
	mu.RUnlock()
	if t != nil {
		return t
	}

	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = NewGlareTheme()
	}
	return current
}

// Set replaces the active theme
func Set(t Theme) {
	mu.Lock()
	current = t
	mu.Unlock()
}
