package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// fder is implemented by *os.File and anything else backed by a descriptor
type fder interface {
	Fd() uintptr
}

// IsTTY reports whether w is an interactive terminal
func IsTTY(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsStdoutTTY reports whether stdout is an interactive terminal
func IsStdoutTTY() bool {
	return IsTTY(os.Stdout)
}

// IsStdinTTY reports whether stdin is an interactive terminal
func IsStdinTTY() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NoColor reports whether the user asked for uncolored output (https://no-color.org)
func NoColor() bool {
	_, set := os.LookupEnv("NO_COLOR")
	return set || os.Getenv("TERM") == "dumb"
}
