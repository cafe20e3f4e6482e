// Package components provides interactive UI components for the glare CLI.
package components

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/torch-corp/glare/internal/ui"
	"github.com/torch-corp/glare/internal/ui/theme"
)

// Option represents a selectable option.
type Option struct {
	Label       string
	Value       string
	Description string
}

// maxVisible caps how many options are drawn at once
const maxVisible = 12

type selectModel struct {
	title    string
	options  []Option
	filter   string
	matches  []int // indexes into options that match filter
	cursor   int   // index into matches
	selected int
	done     bool
	theme    theme.Theme
}

type selectKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Backspace key.Binding
	Quit      key.Binding
}

var selectKeys = selectKeyMap{
	Up:        key.NewBinding(key.WithKeys("up", "ctrl+p")),
	Down:      key.NewBinding(key.WithKeys("down", "ctrl+n")),
	Select:    key.NewBinding(key.WithKeys("enter")),
	Backspace: key.NewBinding(key.WithKeys("backspace")),
	Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc")),
}

func newSelectModel(title string, options []Option) selectModel {
	m := selectModel{
		title:    title,
		options:  options,
		selected: -1,
		theme:    theme.Current(),
	}
	m.applyFilter()
	return m
}

// applyFilter recomputes matches as a case-insensitive substring match on labels
func (m *selectModel) applyFilter() {
	needle := strings.ToLower(m.filter)
	var matches []int
	for i, opt := range m.options {
		if strings.Contains(strings.ToLower(opt.Label), needle) {
			matches = append(matches, i)
		}
	}
	m.matches = matches
	if m.cursor >= len(m.matches) {
		m.cursor = max(len(m.matches)-1, 0)
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, selectKeys.Quit):
		m.selected = -1
		m.done = true
		return m, tea.Quit

	case key.Matches(keyMsg, selectKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, selectKeys.Down):
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, selectKeys.Select):
		if len(m.matches) == 0 {
			return m, nil
		}
		m.selected = m.matches[m.cursor]
		m.done = true
		return m, tea.Quit

	case key.Matches(keyMsg, selectKeys.Backspace):
		if m.filter != "" {
			m.filter = m.filter[:len(m.filter)-1]
			m.applyFilter()
		}

	case keyMsg.Type == tea.KeyRunes:
		m.filter += string(keyMsg.Runes)
		m.applyFilter()
	}

	return m, nil
}

func (m selectModel) View() string {
	if m.done {
		return ""
	}

	styles := m.theme.Styles()
	sym := m.theme.Symbols()

	var b strings.Builder
	b.WriteString(styles.Header.Render(m.title))
	if m.filter != "" {
		b.WriteString(" " + styles.Emphasis.Render(m.filter))
	}
	b.WriteString("\n\n")

	if len(m.matches) == 0 {
		b.WriteString(styles.Muted.Render("  no matches"))
		b.WriteString("\n")
	}

	labelWidth := 0
	for _, opt := range m.options {
		labelWidth = max(labelWidth, len(opt.Label))
	}

	// scroll so the cursor stays in view
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.matches))

	for i := start; i < end; i++ {
		opt := m.options[m.matches[i]]
		label := opt.Label + strings.Repeat(" ", labelWidth-len(opt.Label))
		if i == m.cursor {
			b.WriteString(styles.Cursor.Render(sym.Arrow + " "))
			b.WriteString(styles.Selected.Render(label))
		} else {
			b.WriteString("  " + label)
		}
		if opt.Description != "" {
			b.WriteString(styles.Faint.Render("  │  "))
			b.WriteString(styles.Muted.Render(opt.Description))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Faint.Render("type to filter • ↑/↓ navigate • enter select"))

	return b.String()
}

// Select displays an interactive selection menu and returns the selected option.
// Falls back to numbered menu input for non-TTY environments.
func Select(title string, options []Option) (*Option, error) {
	return SelectWithIO(title, options, os.Stdin, os.Stdout)
}

// SelectWithIO displays an interactive selection menu using custom IO.
func SelectWithIO(title string, options []Option, in io.Reader, out io.Writer) (*Option, error) {
	if len(options) == 0 {
		return nil, errors.New("no options provided")
	}

	if !ui.IsStdoutTTY() || !ui.IsStdinTTY() {
		return selectNumbered(title, options, in, out)
	}

	p := tea.NewProgram(newSelectModel(title, options), tea.WithInput(in), tea.WithOutput(out))
	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("select failed: %w", err)
	}

	final := result.(selectModel)
	if final.selected < 0 {
		return nil, ErrCancelled
	}

	return &options[final.selected], nil
}

// selectNumbered provides a numbered fallback for non-TTY environments.
// The answer may be an option number or an exact label.
func selectNumbered(title string, options []Option, in io.Reader, out io.Writer) (*Option, error) {
	fmt.Fprintln(out, title)
	fmt.Fprintln(out)

	for i, opt := range options {
		if opt.Description != "" {
			fmt.Fprintf(out, "  %d) %s - %s\n", i+1, opt.Label, opt.Description)
		} else {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt.Label)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Enter choice [1-%d]: ", len(options))

	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}
	input, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return &options[0], nil
	}

	for i := range options {
		if options[i].Label == input {
			return &options[i], nil
		}
	}

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(options) {
		return nil, fmt.Errorf("invalid choice: %s", input)
	}

	return &options[choice-1], nil
}
