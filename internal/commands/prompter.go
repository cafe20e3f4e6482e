package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/torch-corp/glare/internal/ui/components"
)

// Prompter provides an interface for interactive prompts
// This abstraction allows for:
// 1. Easy testing via mocking
// 2. Swapping the terminal UI without changing call sites
type Prompter interface {
	Prompt(message string) (string, error)
	PromptWithDefault(message, defaultValue string) (string, error)
	Confirm(message string) (bool, error)
	Select(message string, options []string) (string, error)
}

// StdPrompter implements Prompter on top of the terminal UI components,
// which fall back to line prompts when not attached to a terminal
type StdPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdPrompter creates a new standard I/O prompter
func NewStdPrompter(in io.Reader, out io.Writer) *StdPrompter {
	return &StdPrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Prompt displays a prompt and reads user input
func (p *StdPrompter) Prompt(message string) (string, error) {
	fmt.Fprint(p.out, message)
	response, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || response == "") {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// PromptWithDefault displays a prompt with a default value
func (p *StdPrompter) PromptWithDefault(message, defaultValue string) (string, error) {
	prompt := fmt.Sprintf("%s [%s]: ", message, defaultValue)
	response, err := p.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if response == "" {
		return defaultValue, nil
	}
	return response, nil
}

// Confirm asks a yes/no question. Every confirmation glare asks guards a
// write, so the default answer is no.
func (p *StdPrompter) Confirm(message string) (bool, error) {
	return components.ConfirmWithIO(message, false, p.in, p.out)
}

// Select asks the user to pick one of options
func (p *StdPrompter) Select(message string, options []string) (string, error) {
	opts := make([]components.Option, len(options))
	for i, o := range options {
		opts[i] = components.Option{Label: o, Value: o}
	}
	selected, err := components.SelectWithIO(message, opts, p.in, p.out)
	if err != nil {
		return "", err
	}
	return selected.Value, nil
}

type prompterKey struct{}

// WithPrompter returns a context carrying p for commands to prompt through
func WithPrompter(ctx context.Context, p Prompter) context.Context {
	return context.WithValue(ctx, prompterKey{}, p)
}

// getPrompter returns the prompter injected into the command's context, or a
// StdPrompter over the command's streams
func getPrompter(cmd *cobra.Command) Prompter {
	if ctx := cmd.Context(); ctx != nil {
		if p, ok := ctx.Value(prompterKey{}).(Prompter); ok {
			return p
		}
	}
	return NewStdPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
}
