package installer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/torch-corp/glare/internal/asset"
	"github.com/torch-corp/glare/internal/config"
	"github.com/torch-corp/glare/internal/lockfile"
	"github.com/torch-corp/glare/internal/packages"
	"github.com/torch-corp/glare/internal/tailwind"
)

// BaseUtils are copied by init so every later asset finds its helpers
var BaseUtils = []string{"cn", "types"}

// InitPlan is what init detected about a project, shown to the user before
// anything is written
type InitPlan struct {
	Path             string
	ConfigExists     bool
	Framework        packages.Framework
	TailwindMajor    int
	TailwindDeclared bool
	Manager          packages.Manager

	manifest *packages.Manifest
}

// InitResult summarizes an Init
type InitResult struct {
	Config        *config.Config
	ConfigCreated bool
	// Installed lists base utils copied into the project
	Installed []asset.Key
	// Skipped lists base utils the project already had
	Skipped    []asset.Key
	Packages   []string
	PackageErr error
	Tailwind   *tailwind.Result
	Fonts      *tailwind.FontsResult
}

// PlanInit inspects the project without changing it. path overrides the
// detected install root; an existing glare.json wins over both.
func (in *Installer) PlanInit(path string) (*InitPlan, error) {
	manifest, err := packages.LoadManifest(in.root)
	if err != nil {
		return nil, err
	}

	plan := &InitPlan{
		Path:      path,
		Framework: packages.DetectFramework(manifest),
		Manager:   in.pkgs.Manager(),
		manifest:  manifest,
	}
	plan.TailwindMajor, plan.TailwindDeclared = tailwind.ProjectMajor(manifest)

	if config.Exists(in.root) {
		cfg, err := config.Load(in.root)
		if err != nil {
			return nil, err
		}
		plan.Path = cfg.Path
		plan.ConfigExists = true
	} else if plan.Path == "" {
		plan.Path = config.DetectBasePath(in.root)
	}

	return plan, nil
}

// InstallDirs returns the install directory per kind the plan would use
func (p *InitPlan) InstallDirs() map[asset.Kind]string {
	cfg := &config.Config{Path: p.Path}
	dirs := make(map[asset.Kind]string)
	for _, k := range asset.AllKinds() {
		dirs[k] = cfg.InstallDir(k)
	}
	return dirs
}

// Init writes glare.json (unless present), copies the base utils without
// overwriting, installs the design system's packages in one batch and
// prepares the project's Tailwind setup
func (in *Installer) Init(ctx context.Context, plan *InitPlan) (*InitResult, error) {
	fileLock, err := acquireProjectLock(ctx, in.root, in.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fileLock.Unlock() }()

	cfg, created, err := config.Init(in.root, plan.Path)
	if err != nil {
		return nil, err
	}
	res := &InitResult{Config: cfg, ConfigCreated: created}

	lf, err := in.loadLock()
	if err != nil {
		return nil, err
	}

	r := in.newRun(cfg, plan.manifest, lf)
	for _, name := range BaseUtils {
		if err := in.installSibling(r, asset.KindUtil, name); err != nil {
			return nil, err
		}
	}
	res.Installed, res.Skipped = r.installed, r.skipped

	wanted := append([]string(nil), tailwind.BaseUtilPackages...)
	wanted = append(wanted, tailwind.PluginPackages(plan.TailwindMajor)...)
	wanted = append(wanted, r.externals...)
	res.Packages, res.PackageErr = in.installPackages(ctx, plan.manifest, wanted)

	if len(r.installed) > 0 {
		if err := lockfile.Write(r.lock, lockfile.Path(in.root)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", lockfile.FileName, err)
		}
	}

	tw, err := tailwind.SetupAssuming(in.root, cfg.Path, plan.manifest, plan.TailwindMajor)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tailwind: %w", err)
	}
	res.Tailwind = tw

	if res.Fonts, err = in.setupFonts(plan.Framework); err != nil {
		return nil, fmt.Errorf("failed to add font links: %w", err)
	}

	in.log.Info("project initialized",
		"path", cfg.Path,
		"config_created", created,
		"base_utils", len(res.Installed),
		"packages", len(res.Packages))

	return res, nil
}

// setupFonts adds the font links to the project's layout after confirmation
func (in *Installer) setupFonts(fw packages.Framework) (*tailwind.FontsResult, error) {
	fonts, err := tailwind.CheckFonts(in.root, fw)
	if err != nil || fonts.LayoutPath == "" || fonts.Present {
		return fonts, err
	}

	ok := in.assumeYes
	if !ok && in.confirm != nil {
		rel, _ := filepath.Rel(in.root, fonts.LayoutPath)
		ok, err = in.confirm.Confirm(fmt.Sprintf("Add TORCH Glare font links (RemixIcon + SF Pro) to %s?", filepath.ToSlash(rel)))
		if err != nil {
			return nil, err
		}
	}
	if !ok {
		fonts.Declined, fonts.Manual = true, true
		return fonts, nil
	}

	if err := tailwind.AddFontLinks(fonts); err != nil {
		return nil, err
	}
	in.log.Info("font links", "layout", fonts.LayoutPath, "changed", fonts.Changed, "backup", fonts.Backup)
	return fonts, nil
}
