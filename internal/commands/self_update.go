package commands

import (
	"context"
	"errors"
	"time"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/torch-corp/glare/internal/autoupdate"
	"github.com/torch-corp/glare/internal/buildinfo"
	"github.com/torch-corp/glare/internal/ui/components"
)

// NewSelfUpdateCommand creates the self-update command
func NewSelfUpdateCommand() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "self-update",
		Short: "Update glare to the latest version",
		Long: `Check for and install updates to the glare CLI.

Use --check to only check for updates without installing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelfUpdate(cmd, checkOnly)
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only check for updates without installing")

	return cmd
}

// runSelfUpdate executes the self-update command
func runSelfUpdate(cmd *cobra.Command, checkOnly bool) error {
	ctx, cancel := context.WithTimeout(commandContext(cmd), 2*time.Minute)
	defer cancel()

	out := newOutput(cmd)

	if autoupdate.IsDevBuild() {
		out.Warning("Cannot update development builds. Please install from a release.")
		return nil
	}

	out.KeyValue("Current version", buildinfo.Version)

	latest, err := components.RunWithSpinner("Checking for updates", out.ErrWriter(), func() (*selfupdate.Release, error) {
		return autoupdate.Latest(ctx)
	})
	if err != nil {
		if errors.Is(err, autoupdate.ErrDevBuild) {
			out.Warning(err.Error())
			return nil
		}
		return err
	}

	if latest == nil {
		out.Success("You are already using the latest version (" + buildinfo.Version + ")")
		return nil
	}

	out.Info("New version available: " + latest.Version())
	if checkOnly {
		out.Muted("Run 'glare self-update' to install it")
		return nil
	}

	release, err := components.RunWithSpinner("Downloading and installing update", out.ErrWriter(), func() (*selfupdate.Release, error) {
		return autoupdate.Apply(ctx)
	})
	if err != nil {
		return err
	}

	out.Success("Updated to " + release.Version())
	return nil
}
