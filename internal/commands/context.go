package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/torch-corp/glare/internal/installer"
	"github.com/torch-corp/glare/internal/packages"
	"github.com/torch-corp/glare/internal/registry"
	"github.com/torch-corp/glare/internal/ui"
	"github.com/torch-corp/glare/internal/utils"
)

type runnerKey struct{}

// withRunner returns a context whose commands run the package manager through r
func withRunner(ctx context.Context, r packages.Runner) context.Context {
	return context.WithValue(ctx, runnerKey{}, r)
}

// commandEnv is what every project command needs, resolved from global flags
type commandEnv struct {
	root     string
	registry *registry.Registry
	out      *ui.Output
	prompter Prompter
	yes      bool
	runner   packages.Runner
}

// newCommandEnv resolves --cwd, --registry and --yes for cmd
func newCommandEnv(cmd *cobra.Command) (*commandEnv, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	registryDir, _ := cmd.Flags().GetString("registry")
	yes, _ := cmd.Flags().GetBool("yes")

	root := cwd
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}
	root, err := utils.NormalizePath(root)
	if err != nil {
		return nil, fmt.Errorf("invalid --cwd: %w", err)
	}
	if !utils.IsDirectory(root) {
		return nil, fmt.Errorf("project directory %s does not exist", root)
	}

	reg, err := registry.Open(registryDir)
	if err != nil {
		return nil, err
	}

	env := &commandEnv{
		root:     root,
		registry: reg,
		out:      newOutput(cmd),
		prompter: getPrompter(cmd),
		yes:      yes,
	}
	if ctx := cmd.Context(); ctx != nil {
		if r, ok := ctx.Value(runnerKey{}).(packages.Runner); ok {
			env.runner = r
		}
	}
	return env, nil
}

func (e *commandEnv) installer() *installer.Installer {
	runner := e.runner
	if runner == nil {
		runner = packages.ExecRunner{Stdout: e.out.Writer(), Stderr: e.out.ErrWriter()}
	}
	return installer.New(installer.Options{
		Root:      e.root,
		Registry:  e.registry,
		Runner:    runner,
		Confirmer: e.prompter,
		AssumeYes: e.yes,
		Output:    e.out,
	})
}

// commandContext returns the command context, never nil
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
