package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/torch-corp/glare/internal/asset"
	"github.com/torch-corp/glare/internal/config"
	"github.com/torch-corp/glare/internal/installer"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Set up a project for glare",
		Long: `Write glare.json, install the base utils (cn, types) and the design system's
packages, and prepare the project's Tailwind setup.

The install path is detected from the tsconfig.json or jsconfig.json path
aliases when --path is not given. An existing glare.json is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, path)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Directory, relative to the project, that assets are installed under")

	return cmd
}

// runInit executes the init command
func runInit(cmd *cobra.Command, path string) error {
	env, err := newCommandEnv(cmd)
	if err != nil {
		return err
	}
	out := env.out
	in := env.installer()

	plan, err := in.PlanInit(path)
	if err != nil {
		return err
	}

	if path == "" && !plan.ConfigExists && !env.yes {
		answer, err := env.prompter.PromptWithDefault("Install path", plan.Path)
		if err != nil {
			return err
		}
		plan.Path = answer
	}

	printPlan(env, plan)

	if plan.ConfigExists {
		out.Warning(config.FileName + " already exists, keeping it")
	}

	if !env.yes {
		ok, err := env.prompter.Confirm("Proceed with this configuration?")
		if err != nil {
			return err
		}
		if !ok {
			out.Info("Init cancelled, nothing was changed")
			return nil
		}
	}

	res, err := in.Init(commandContext(cmd), plan)
	if err != nil {
		return err
	}

	out.Newline()
	if res.ConfigCreated {
		out.Success("Created " + config.FileName)
	}
	for _, k := range res.Installed {
		out.SuccessItem(k.String())
	}
	if len(res.Skipped) > 0 {
		out.Muted("Already present: " + keyList(res.Skipped))
	}
	reportPackages(out, res.Packages, res.PackageErr)
	reportTailwind(out, res.Tailwind)
	reportFonts(out, res.Fonts)

	out.Newline()
	out.Info("Add your first component with " + out.EmphasisText("glare add <name>"))
	return nil
}

func printPlan(env *commandEnv, plan *installer.InitPlan) {
	out := env.out

	tailwindVersion := fmt.Sprintf("v%d", plan.TailwindMajor)
	if !plan.TailwindDeclared {
		tailwindVersion = "not installed"
	}

	out.Header("glare init")
	out.KeyValue("Project", env.root)
	out.KeyValue("Framework", plan.Framework.Label())
	out.KeyValue("Tailwind", tailwindVersion)
	out.KeyValue("Package manager", string(plan.Manager))
	out.KeyValue("Install path", plan.Path)

	dirs := plan.InstallDirs()
	for _, k := range asset.AllKinds() {
		out.KeyValue(k.Label+"s", dirs[k])
	}
	out.Newline()
}
