package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"github.com/torch-corp/glare/internal/ui/theme"
)

// Output provides styled terminal output.
type Output struct {
	out   io.Writer
	err   io.Writer
	theme theme.Theme
	noTTY bool
	width int
}

// NewOutput creates a new styled output instance.
func NewOutput(out, err io.Writer) *Output {
	width := 80 // default
	if w, _, e := term.GetSize(int(os.Stdout.Fd())); e == nil && w > 0 {
		width = w
	}
	return &Output{
		out:   out,
		err:   err,
		theme: theme.Current(),
		noTTY: !IsTTY(out) || NoColor(),
		width: width,
	}
}

// Writer returns the underlying stdout writer.
func (o *Output) Writer() io.Writer {
	return o.out
}

// ErrWriter returns the underlying stderr writer.
func (o *Output) ErrWriter() io.Writer {
	return o.err
}

// Interactive reports whether output is going to a styled terminal.
func (o *Output) Interactive() bool {
	return !o.noTTY
}

// Wrap wraps text to fit the terminal width.
func (o *Output) Wrap(text string) string {
	if o.width <= 0 {
		return text
	}
	return wordwrap.String(text, o.width)
}

func (o *Output) line(w io.Writer, style func(theme.Styles) string, plain string) {
	if o.noTTY {
		fmt.Fprintln(w, plain)
		return
	}
	fmt.Fprintln(w, style(o.theme.Styles()))
}

// Success prints a success message with checkmark.
func (o *Output) Success(msg string) {
	text := o.theme.Symbols().Success + " " + msg
	o.line(o.out, func(s theme.Styles) string { return s.Success.Render(text) }, text)
}

// Error prints an error message with X mark to stderr.
func (o *Output) Error(msg string) {
	text := o.theme.Symbols().Error + " " + o.Wrap(msg)
	o.line(o.err, func(s theme.Styles) string { return s.Error.Render(text) }, text)
}

// Warning prints a warning message to stderr.
func (o *Output) Warning(msg string) {
	text := o.theme.Symbols().Warning + " " + o.Wrap(msg)
	o.line(o.err, func(s theme.Styles) string { return s.Warning.Render(text) }, text)
}

// Info prints an info message with arrow.
func (o *Output) Info(msg string) {
	text := o.theme.Symbols().Info + " " + msg
	o.line(o.out, func(s theme.Styles) string { return s.Info.Render(text) }, text)
}

// Header prints a bold header.
func (o *Output) Header(text string) {
	o.line(o.out, func(s theme.Styles) string { return s.Header.Render(text) }, text)
}

// Muted prints muted/dim text.
func (o *Output) Muted(msg string) {
	o.line(o.out, func(s theme.Styles) string { return s.Muted.Render(msg) }, msg)
}

// KeyValue prints a key-value pair.
func (o *Output) KeyValue(key, value string) {
	if o.noTTY {
		fmt.Fprintf(o.out, "%s: %s\n", key, value)
		return
	}
	styles := o.theme.Styles()
	fmt.Fprintln(o.out, styles.Key.Render(key+":")+" "+styles.Value.Render(value))
}

// List prints a bulleted list.
func (o *Output) List(items []string) {
	for _, item := range items {
		o.ListItem(o.theme.Symbols().Bullet, item)
	}
}

// ListItem prints a single list item with custom prefix.
func (o *Output) ListItem(prefix, item string) {
	if o.noTTY {
		fmt.Fprintf(o.out, "  %s %s\n", prefix, item)
		return
	}
	fmt.Fprintf(o.out, "  %s %s\n", o.theme.Styles().ListBullet.Render(prefix), item)
}

// SuccessItem prints a success list item.
func (o *Output) SuccessItem(item string) {
	sym := o.theme.Symbols().Success
	if o.noTTY {
		fmt.Fprintf(o.out, "  %s %s\n", sym, item)
		return
	}
	fmt.Fprintf(o.out, "  %s %s\n", o.theme.Styles().Success.Render(sym), item)
}

// Section prints a section header with underline.
func (o *Output) Section(title string) {
	if o.noTTY {
		fmt.Fprintln(o.out, title)
		fmt.Fprintln(o.out, strings.Repeat("-", len(title)))
		return
	}
	styles := o.theme.Styles()
	fmt.Fprintln(o.out, styles.SubHeader.Render(title))
	fmt.Fprintln(o.out, styles.Muted.Render(strings.Repeat("─", len(title))))
}

// Newline prints an empty line.
func (o *Output) Newline() {
	fmt.Fprintln(o.out)
}

// BoldText returns bold-styled text.
func (o *Output) BoldText(text string) string {
	if o.noTTY {
		return text
	}
	return o.theme.Styles().Bold.Render(text)
}

// MutedText returns muted-styled text.
func (o *Output) MutedText(text string) string {
	if o.noTTY {
		return text
	}
	return o.theme.Styles().Muted.Render(text)
}

// EmphasisText returns emphasis-styled text.
func (o *Output) EmphasisText(text string) string {
	if o.noTTY {
		return text
	}
	return o.theme.Styles().Emphasis.Render(text)
}
