package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torch-corp/glare/internal/buildinfo"
)

// NewRootCommand creates the glare command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "glare",
		Short: "glare - Install design system assets into your project",
		Long: `glare copies design system components, hooks, utils, layouts and providers
into your project as source files, following their imports to install the
sibling assets and npm packages they depend on.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().String("cwd", "", "Project directory to operate on (defaults to the current directory)")
	rootCmd.PersistentFlags().String("registry", "",
		"Template directory to install from instead of the bundled templates (can also use GLARE_REGISTRY environment variable)")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Answer yes to every prompt")

	rootCmd.AddCommand(NewInitCommand())
	rootCmd.AddCommand(NewAddCommand())
	for _, cmd := range NewKindCommands() {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(NewUpdateCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewSelfUpdateCommand())

	return rootCmd
}
