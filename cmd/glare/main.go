package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/torch-corp/glare/internal/autoupdate"
	"github.com/torch-corp/glare/internal/buildinfo"
	"github.com/torch-corp/glare/internal/commands"
	"github.com/torch-corp/glare/internal/logger"
)

func main() {
	// Log command invocation with context
	log := logger.Get()
	cwd, _ := os.Getwd()
	log.Info("command invoked", "version", buildinfo.Version, "command", strings.Join(os.Args[1:], " "), "cwd", cwd)

	// Check for a newer release in the background (once per day).
	// Skip when the user is already running self-update or the MCP server owns stdio.
	var notice <-chan string
	if len(os.Args) < 2 || (os.Args[1] != "self-update" && os.Args[1] != "serve") {
		notice = autoupdate.CheckInBackground()
	}

	rootCmd := commands.NewRootCommand()
	err := rootCmd.Execute()

	select {
	case msg, ok := <-notice:
		if ok && msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
	default:
	}

	if err != nil {
		log.Error("command failed", "error", err)
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
