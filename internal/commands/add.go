package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torch-corp/glare/internal/asset"
	"github.com/torch-corp/glare/internal/config"
)

// NewAddCommand creates the add command, which installs components
func NewAddCommand() *cobra.Command {
	cmd := newKindCommand(asset.KindComponent)
	cmd.Use = "add [name]"
	cmd.Aliases = []string{"component"}
	return cmd
}

// NewKindCommands creates the install commands for the non-component kinds
func NewKindCommands() []*cobra.Command {
	return []*cobra.Command{
		newKindCommand(asset.KindHook),
		newKindCommand(asset.KindUtil),
		newKindCommand(asset.KindLayout),
		newKindCommand(asset.KindProvider),
	}
}

func newKindCommand(kind asset.Kind) *cobra.Command {
	return &cobra.Command{
		Use:   kind.Key + " [name]",
		Short: fmt.Sprintf("Install a %s", kind.Key),
		Long: fmt.Sprintf(`Install a %s into the project's %s directory.

Sibling assets the %s imports are installed too, unless the project already
has them, and npm packages it imports that are missing from package.json are
added with the project's package manager. Without a name, pick one from a list.`,
			kind.Key, kind.Dir, kind.Key),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, kind, args)
		},
	}
}

// runAdd executes an install command for one kind
func runAdd(cmd *cobra.Command, kind asset.Kind, args []string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		// fail before the picker when the project was never initialized
		if _, err := config.Load(env.root); err != nil {
			return err
		}
		name, err = selectAsset(env, kind)
		if err != nil {
			return err
		}
	}

	res, err := env.installer().Add(commandContext(cmd), kind, name)
	if err != nil {
		return err
	}

	out := env.out
	if res.Declined {
		out.Info(fmt.Sprintf("Kept existing %s %s", kind.Key, name))
		return nil
	}

	out.Success("Installed " + out.BoldText(res.Installed[0].String()))
	for _, k := range res.Installed[1:] {
		out.SuccessItem(k.String())
	}
	if len(res.Skipped) > 0 {
		out.Muted("Already present: " + keyList(res.Skipped))
	}
	reportPackages(out, res.Packages, res.PackageErr)

	return nil
}

// selectAsset asks the user to pick one of the registry's assets of kind
func selectAsset(env *commandEnv, kind asset.Kind) (string, error) {
	names, err := env.registry.List(kind)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no %s templates available in %s registry", kind.Key, env.registry.Source())
	}
	if env.yes {
		return "", fmt.Errorf("a %s name is required with --yes", kind.Key)
	}

	return env.prompter.Select(fmt.Sprintf("Which %s do you want to install?", kind.Key), names)
}
