package components

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/torch-corp/glare/internal/ui"
	"github.com/torch-corp/glare/internal/ui/theme"
)

// spinnerDoneMsg signals that the spinner task is complete.
type spinnerDoneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	theme   theme.Theme
}

func newSpinnerModel(message string) spinnerModel {
	th := theme.Current()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = th.Styles().Spinner

	return spinnerModel{
		spinner: s,
		message: message,
		theme:   th,
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.theme.Styles().Muted.Render(m.message)
}

// RunWithSpinner runs fn while showing a spinner on out.
// Non-TTY output gets a single "message..." line instead.
func RunWithSpinner[T any](message string, out io.Writer, fn func() (T, error)) (T, error) {
	if !ui.IsTTY(out) {
		fmt.Fprintf(out, "%s...\n", message)
		return fn()
	}

	var result T
	var fnErr error

	p := tea.NewProgram(newSpinnerModel(message), tea.WithOutput(out), tea.WithInput(nil))
	go func() {
		result, fnErr = fn()
		p.Send(spinnerDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return result, fmt.Errorf("spinner failed: %w", err)
	}

	return result, fnErr
}
