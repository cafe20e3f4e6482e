package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewUpdateCommand creates the update command
func NewUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Re-copy every installed asset from its latest template",
		Long: `Overwrite every installed component, hook, util, layout and provider with
its current template, install any sibling assets and packages they now need,
and re-run the Tailwind setup.

Local edits to installed assets are lost. Assets whose files changed since
they were installed are listed before being overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd)
		},
	}
}

// runUpdate executes the update command
func runUpdate(cmd *cobra.Command) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}
	out := env.out

	res, err := env.installer().Update(commandContext(cmd))
	if err != nil {
		return err
	}
	if res.Declined {
		out.Info("Update cancelled, nothing was changed")
		return nil
	}

	if len(res.Updated) == 0 {
		out.Info("No installed assets to update")
	} else {
		out.Success(fmt.Sprintf("Updated %d asset(s)", len(res.Updated)))
		for _, k := range res.Updated {
			out.SuccessItem(k.String())
		}
	}
	if len(res.Installed) > 0 {
		out.Success("Installed new dependencies: " + keyList(res.Installed))
	}
	if len(res.Unresolved) > 0 {
		out.Warning("No template for: " + keyList(res.Unresolved))
	}
	reportPackages(out, res.Packages, res.PackageErr)
	reportTailwind(out, res.Tailwind)

	return nil
}
