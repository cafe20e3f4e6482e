package commands

import (
	"github.com/spf13/cobra"

	"github.com/torch-corp/glare/internal/asset"
	"github.com/torch-corp/glare/internal/buildinfo"
	"github.com/torch-corp/glare/internal/config"
	"github.com/torch-corp/glare/internal/lockfile"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [kind]",
		Short: "List the assets available to install",
		Long: `List the registry's assets, optionally only those of one kind
(component, hook, util, layout, provider). In an initialized project, assets
recorded in glare.lock are marked as installed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args)
		},
	}
}

// runList executes the list command
func runList(cmd *cobra.Command, args []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}
	out := env.out

	kinds := asset.AllKinds()
	if len(args) > 0 {
		kind, err := asset.Parse(args[0])
		if err != nil {
			return err
		}
		kinds = []asset.Kind{kind}
	}

	var installed *lockfile.LockFile
	if config.Exists(env.root) {
		if lf, err := lockfile.Load(env.root, buildinfo.GetCreatedBy()); err == nil {
			installed = lf
		}
	}

	for i, kind := range kinds {
		names, err := env.registry.List(kind)
		if err != nil {
			return err
		}
		if i > 0 {
			out.Newline()
		}
		out.Section(kind.Label + "s")
		if len(names) == 0 {
			out.Muted("  none")
			continue
		}
		for _, name := range names {
			if installed != nil && installed.Find(kind, name) != nil {
				out.SuccessItem(name + " " + out.MutedText("(installed)"))
				continue
			}
			out.List([]string{name})
		}
	}

	return nil
}
