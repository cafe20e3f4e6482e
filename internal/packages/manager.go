package packages

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/torch-corp/glare/internal/utils"
)

// Manager is a JavaScript package manager executable
type Manager string

const (
	NPM  Manager = "npm"
	PNPM Manager = "pnpm"
	Yarn Manager = "yarn"
	Bun  Manager = "bun"
)

// lockfiles in detection priority order
var lockfiles = []struct {
	file    string
	manager Manager
}{
	{"pnpm-lock.yaml", PNPM},
	{"yarn.lock", Yarn},
	{"package-lock.json", NPM},
	{"bun.lockb", Bun},
	{".yarnrc.yml", Yarn},
}

// Detect returns the package manager a project uses, judged by its lockfile.
// Projects without one default to npm.
func Detect(root string) Manager {
	for _, lf := range lockfiles {
		if utils.FileExists(filepath.Join(root, lf.file)) {
			return lf.manager
		}
	}
	return NPM
}

// InstallArgs builds the argument list that adds names to the project
func (m Manager) InstallArgs(names []string, workspaceRoot bool) []string {
	var args []string
	switch m {
	case NPM:
		args = []string{"install"}
	default:
		args = []string{"add"}
	}
	if m == PNPM && workspaceRoot {
		args = append(args, "-w")
	}
	return append(args, names...)
}

// pnpmWorkspace is the subset of pnpm-workspace.yaml we read
type pnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// IsPnpmWorkspaceRoot reports whether root holds a pnpm-workspace.yaml that
// declares packages. pnpm refuses to add dependencies to such a root without -w.
func IsPnpmWorkspaceRoot(root string) bool {
	data, err := os.ReadFile(filepath.Join(root, "pnpm-workspace.yaml"))
	if err != nil {
		return false
	}

	var ws pnpmWorkspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return false
	}
	return len(ws.Packages) > 0
}
