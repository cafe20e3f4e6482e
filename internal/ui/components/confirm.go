package components

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"github.com/torch-corp/glare/internal/ui"
	"github.com/torch-corp/glare/internal/ui/theme"
)

// ErrCancelled is returned when the user aborts a prompt with esc/ctrl+c
var ErrCancelled = errors.New("cancelled")

type confirmModel struct {
	message   string
	confirmed bool
	done      bool
	cancelled bool
	theme     theme.Theme
	width     int
}

type confirmKeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Submit key.Binding
	Quit   key.Binding
}

var confirmKeys = confirmKeyMap{
	Yes:    key.NewBinding(key.WithKeys("y", "Y")),
	No:     key.NewBinding(key.WithKeys("n", "N")),
	Toggle: key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab")),
	Submit: key.NewBinding(key.WithKeys("enter")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
}

func newConfirmModel(message string, defaultYes bool) confirmModel {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	return confirmModel{
		message:   message,
		confirmed: defaultYes,
		theme:     theme.Current(),
		width:     width,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, confirmKeys.Quit):
		m.confirmed = false
		m.cancelled = true
		m.done = true
	case key.Matches(keyMsg, confirmKeys.Yes):
		m.confirmed = true
		m.done = true
	case key.Matches(keyMsg, confirmKeys.No):
		m.confirmed = false
		m.done = true
	case key.Matches(keyMsg, confirmKeys.Toggle):
		m.confirmed = !m.confirmed
	case key.Matches(keyMsg, confirmKeys.Submit):
		m.done = true
	}

	if m.done {
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	styles := m.theme.Styles()

	yes, no := styles.Muted.Render(" Yes "), styles.Muted.Render(" No ")
	if m.confirmed {
		yes = styles.Selected.Render("[Yes]")
	} else {
		no = styles.Selected.Render("[No]")
	}

	// leave room for the buttons
	msgWidth := max(m.width-13, 20)

	return fmt.Sprintf("%s %s %s", wordwrap.String(m.message, msgWidth), yes, no)
}

// Confirm displays an interactive yes/no prompt on the terminal.
// Falls back to a y/n line prompt when stdin or stdout is not a TTY.
func Confirm(message string, defaultYes bool) (bool, error) {
	return ConfirmWithIO(message, defaultYes, os.Stdin, os.Stdout)
}

// ConfirmWithIO is Confirm with explicit streams.
func ConfirmWithIO(message string, defaultYes bool, in io.Reader, out io.Writer) (bool, error) {
	if !ui.IsStdoutTTY() || !ui.IsStdinTTY() {
		return confirmSimple(message, defaultYes, in, out)
	}

	p := tea.NewProgram(newConfirmModel(message, defaultYes), tea.WithInput(in), tea.WithOutput(out))
	result, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("confirm failed: %w", err)
	}

	final := result.(confirmModel)
	if final.cancelled {
		return false, ErrCancelled
	}
	return final.confirmed, nil
}

// confirmSimple reads a y/n answer from a line of input. Anything that is not
// a clear yes or no takes the default.
func confirmSimple(message string, defaultYes bool, in io.Reader, out io.Writer) (bool, error) {
	hint := "(y/N)"
	if defaultYes {
		hint = "(Y/n)"
	}
	fmt.Fprintf(out, "%s %s: ", message, hint)

	reader, ok := in.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(in)
	}
	input, err := reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || input == "") {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	switch strings.TrimSpace(strings.ToLower(input)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return defaultYes, nil
	}
}
