package packages

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/torch-corp/glare/internal/logger"
)

// ErrPackageInstallFailed wraps a failed package manager run. Callers log it
// and carry on; files already copied stay in place.
var ErrPackageInstallFailed = errors.New("package install failed")

// Runner executes an external command in dir
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands with os/exec, streaming their output
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner
func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// Installer adds npm packages to one project
type Installer struct {
	root    string
	manager Manager
	runner  Runner
	log     *slog.Logger
}

// NewInstaller creates an installer for the project at root, detecting its
// package manager. A nil runner uses ExecRunner.
func NewInstaller(root string, runner Runner) *Installer {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Installer{
		root:    root,
		manager: Detect(root),
		runner:  runner,
		log:     logger.Get(),
	}
}

// Manager returns the detected package manager
func (i *Installer) Manager() Manager {
	return i.manager
}

// Command returns the full command line InstallMissing would run
func (i *Installer) Command(names []string) []string {
	args := i.manager.InstallArgs(names, i.manager == PNPM && IsPnpmWorkspaceRoot(i.root))
	return append([]string{string(i.manager)}, args...)
}

// InstallMissing adds the named packages in a single package manager run.
// It does nothing when names is empty.
func (i *Installer) InstallMissing(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	command := i.Command(names)
	i.log.Info("installing packages", "manager", i.manager, "packages", names, "command", strings.Join(command, " "))

	if err := i.runner.Run(ctx, i.root, command[0], command[1:]...); err != nil {
		i.log.Error("package install failed", "manager", i.manager, "error", err)
		return fmt.Errorf("%w: %s: %v", ErrPackageInstallFailed, strings.Join(command, " "), err)
	}

	return nil
}
