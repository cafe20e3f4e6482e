package tailwind

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/torch-corp/glare/internal/logger"
	"github.com/torch-corp/glare/internal/packages"
	"github.com/torch-corp/glare/internal/utils"
)

// ScaffoldFile is the config written when a v3 project has none
const ScaffoldFile = "tailwind.config.ts"

// Result describes what Setup did to a project
type Result struct {
	Major    int
	Declared bool
	// Assumed is set when tailwindcss is not declared and Major was supplied by the caller
	Assumed bool

	ConfigPath    string
	ConfigCreated bool
	ConfigChanged bool

	CSSPath    string
	CSSCreated bool
	CSSChanged bool

	// Backups lists the .bak files written before modifying existing files
	Backups []string
}

// Changed reports whether any file was created or modified
func (r *Result) Changed() bool {
	return r.ConfigCreated || r.ConfigChanged || r.CSSCreated || r.CSSChanged
}

// ProjectMajor returns the Tailwind major version a project uses. A project
// that does not declare tailwindcss reports 4, the version init would install.
func ProjectMajor(m *packages.Manifest) (major int, declared bool) {
	if m == nil {
		return 4, false
	}
	v, ok := m.Version("tailwindcss")
	if !ok {
		return 4, false
	}
	major, _ = MajorVersion(v)
	return major, true
}

// FindConfig returns the path of the project's Tailwind config, or "" when
// there is none
func FindConfig(root string) string {
	for _, name := range ConfigFiles {
		p := filepath.Join(root, name)
		if utils.FileExists(p) {
			return p
		}
	}
	return ""
}

// FindGlobalCSS returns the first existing global stylesheet for the framework
func FindGlobalCSS(root string, fw packages.Framework) string {
	for _, rel := range GlobalCSSCandidates(fw) {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if utils.FileExists(p) {
			return p
		}
	}
	return ""
}

// Setup brings the project at root in line with the design system's Tailwind
// requirements. v3 projects get their config patched (or scaffolded) and the
// @tailwind directives in their global stylesheet. v4 projects get @plugin
// directives in the stylesheet. Projects that do not declare tailwindcss are
// left alone.
func Setup(root, installRoot string, m *packages.Manifest) (*Result, error) {
	major, declared := ProjectMajor(m)
	if !declared {
		logger.Get().Info("tailwindcss not declared, skipping tailwind setup", "root", root)
		return &Result{Major: major}, nil
	}
	return setup(root, installRoot, m, major)
}

// SetupAssuming is Setup for a project that may not have installed Tailwind
// yet: when tailwindcss is not declared the project is set up for major.
func SetupAssuming(root, installRoot string, m *packages.Manifest, major int) (*Result, error) {
	if declared, ok := ProjectMajor(m); ok {
		return setup(root, installRoot, m, declared)
	}
	res, err := setup(root, installRoot, m, major)
	res.Declared, res.Assumed = false, true
	return res, err
}

func setup(root, installRoot string, m *packages.Manifest, major int) (*Result, error) {
	log := logger.Get()
	res := &Result{Major: major, Declared: true}

	fw := packages.DetectFramework(m)

	if major < 4 {
		if err := setupConfig(root, installRoot, res); err != nil {
			return res, err
		}
	}

	cssPath := FindGlobalCSS(root, fw)
	if cssPath == "" {
		cssPath = filepath.Join(root, filepath.FromSlash(DefaultGlobalCSS(fw)))
	}
	patch := PatchCSSv3
	if major >= 4 {
		patch = PatchCSSv4
	}
	created, changed, backup, err := patchFile(cssPath, patch)
	if err != nil {
		return res, err
	}
	res.CSSPath, res.CSSCreated, res.CSSChanged = cssPath, created, changed
	if backup != "" {
		res.Backups = append(res.Backups, backup)
	}

	log.Info("tailwind setup complete",
		"major", major,
		"config", res.ConfigPath,
		"config_changed", res.ConfigCreated || res.ConfigChanged,
		"css", res.CSSPath,
		"css_changed", res.CSSCreated || res.CSSChanged)

	return res, nil
}

func setupConfig(root, installRoot string, res *Result) error {
	globs := ContentGlobs(installRoot)

	path := FindConfig(root)
	if path == "" {
		path = filepath.Join(root, ScaffoldFile)
		if err := utils.WriteFileAtomic(path, []byte(Scaffold(globs)), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		res.ConfigPath, res.ConfigCreated = path, true
		return nil
	}

	_, changed, backup, err := patchFile(path, func(content string) (string, bool) {
		return PatchConfig(content, globs)
	})
	if err != nil {
		return err
	}
	res.ConfigPath, res.ConfigChanged = path, changed
	if backup != "" {
		res.Backups = append(res.Backups, backup)
	}
	return nil
}

// patchFile applies patch to the file at path, creating it when missing. An
// existing file is copied to path.bak before being rewritten.
func patchFile(path string, patch func(string) (string, bool)) (created, changed bool, backup string, err error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		created = true
	case err != nil:
		return false, false, "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated, modified := patch(string(data))
	if !modified && !created {
		return false, false, "", nil
	}

	if !created {
		backup = path + ".bak"
		if err := os.WriteFile(backup, data, 0644); err != nil {
			return false, false, "", fmt.Errorf("failed to back up %s: %w", path, err)
		}
	}

	if err := utils.WriteFileAtomic(path, []byte(updated), 0644); err != nil {
		return false, false, "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return created, !created, backup, nil
}
