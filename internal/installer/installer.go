// Package installer copies template assets into a consumer project, following
// each copied file's sibling imports and collecting the npm packages they need.
package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/torch-corp/glare/internal/asset"
	"github.com/torch-corp/glare/internal/buildinfo"
	"github.com/torch-corp/glare/internal/config"
	"github.com/torch-corp/glare/internal/lockfile"
	"github.com/torch-corp/glare/internal/logger"
	"github.com/torch-corp/glare/internal/packages"
	"github.com/torch-corp/glare/internal/registry"
	"github.com/torch-corp/glare/internal/scanner"
	"github.com/torch-corp/glare/internal/ui"
	"github.com/torch-corp/glare/internal/utils"
)

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// Options configures an Installer
type Options struct {
	// Root is the consumer project root
	Root string
	// Registry is the template source; nil uses the embedded registry
	Registry *registry.Registry
	// Runner executes the package manager; nil runs it for real
	Runner packages.Runner
	// Confirmer answers replace and update prompts
	Confirmer Confirmer
	// AssumeYes answers every prompt with yes without asking
	AssumeYes bool
	// Output receives user-facing messages; nil discards them
	Output *ui.Output
	// LockTimeout bounds the wait for the project lock
	LockTimeout time.Duration
}

// Installer installs and updates template assets in one project
type Installer struct {
	root        string
	reg         *registry.Registry
	pkgs        *packages.Installer
	confirm     Confirmer
	assumeYes   bool
	out         *ui.Output
	log         *slog.Logger
	lockTimeout time.Duration
}

// New creates an Installer for the project at opts.Root
func New(opts Options) *Installer {
	reg := opts.Registry
	if reg == nil {
		reg = registry.Embedded()
	}
	out := opts.Output
	if out == nil {
		out = ui.NewOutput(io.Discard, io.Discard)
	}

	return &Installer{
		root:        opts.Root,
		reg:         reg,
		pkgs:        packages.NewInstaller(opts.Root, opts.Runner),
		confirm:     opts.Confirmer,
		assumeYes:   opts.AssumeYes,
		out:         out,
		log:         logger.Get(),
		lockTimeout: opts.LockTimeout,
	}
}

// Result summarizes one top-level Add
type Result struct {
	// Installed lists every asset copied, the requested one first
	Installed []asset.Key
	// Skipped lists nested assets already present in the project
	Skipped []asset.Key
	// Missing lists sibling references that no template satisfies
	Missing []asset.Key
	// Declined is set when the user chose not to replace an existing install
	Declined bool
	// Packages are the external packages handed to the package manager
	Packages []string
	// PackageErr records a failed package install; the copied files remain
	PackageErr error
}

// run is the state shared by every asset copied during one top-level command
type run struct {
	cfg       *config.Config
	lock      *lockfile.LockFile
	visited   map[asset.Key]bool
	copied    map[asset.Key]bool
	externals []string
	deps      map[string]string

	installed []asset.Key
	skipped   []asset.Key
	missing   []asset.Key
}

func (in *Installer) newRun(cfg *config.Config, manifest *packages.Manifest, lf *lockfile.LockFile) *run {
	return &run{
		cfg:     cfg,
		lock:    lf,
		visited: make(map[asset.Key]bool),
		copied:  make(map[asset.Key]bool),
		deps:    manifest.All(),
	}
}

// Add installs the named asset and, recursively, the sibling assets it
// imports. An existing install of the requested asset is replaced only after
// confirmation; declining is not an error.
func (in *Installer) Add(ctx context.Context, kind asset.Kind, name string) (*Result, error) {
	cfg, err := config.Load(in.root)
	if err != nil {
		return nil, err
	}

	t, err := in.reg.Resolve(kind, name)
	if err != nil {
		return nil, err
	}

	manifest, err := packages.LoadManifest(in.root)
	if err != nil {
		return nil, err
	}

	fileLock, err := acquireProjectLock(ctx, in.root, in.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fileLock.Unlock() }()

	lf, err := in.loadLock()
	if err != nil {
		return nil, err
	}

	res := &Result{}
	if existing, ok := in.findInstalled(cfg, t); ok {
		replace, err := in.confirmReplace(t)
		if err != nil {
			return nil, err
		}
		if !replace {
			in.log.Info("replace declined", "asset", t.Key().String())
			res.Declined = true
			return res, nil
		}
		if err := os.RemoveAll(existing); err != nil {
			return nil, fmt.Errorf("failed to remove existing %s: %w", t.Key(), err)
		}
	}

	r := in.newRun(cfg, manifest, lf)
	if err := in.installTemplate(r, t); err != nil {
		return nil, err
	}

	res.Installed, res.Skipped, res.Missing = r.installed, r.skipped, r.missing
	res.Packages, res.PackageErr = in.installPackages(ctx, manifest, r.externals)

	if err := lockfile.Write(r.lock, lockfile.Path(in.root)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", lockfile.FileName, err)
	}

	in.log.Info("asset installed",
		"asset", t.Key().String(),
		"installed", len(res.Installed),
		"skipped", len(res.Skipped),
		"packages", len(res.Packages))

	return res, nil
}

// loadLock reads glare.lock. A corrupt lock only loses its history: it is
// reported and replaced by the next write.
func (in *Installer) loadLock() (*lockfile.LockFile, error) {
	lf, err := lockfile.Load(in.root, buildinfo.GetCreatedBy())
	if errors.Is(err, lockfile.ErrCorrupt) {
		in.log.Warn("ignoring corrupt lock file", "error", err)
		in.out.Warning(fmt.Sprintf("Ignoring %s, it will be rewritten: %v", lockfile.FileName, err))
		return lockfile.New(buildinfo.GetCreatedBy()), nil
	}
	return lf, err
}

func (in *Installer) confirmReplace(t *registry.Template) (bool, error) {
	if in.assumeYes {
		return true, nil
	}
	if in.confirm == nil {
		return false, nil
	}
	return in.confirm.Confirm(fmt.Sprintf("%s %s already exists. Replace it?", t.Kind.Label, t.Name))
}

// installTemplate copies every file of t, depth-first, scanning each file as
// soon as it lands and installing its sibling references before moving on
func (in *Installer) installTemplate(r *run, t *registry.Template) error {
	key := t.Key()
	r.visited[key] = true
	r.copied[key] = true

	installDir := filepath.Join(in.root, r.cfg.InstallDir(t.Kind))
	if err := utils.EnsureDir(installDir); err != nil {
		return fmt.Errorf("failed to create %s: %w", installDir, err)
	}

	files, err := in.reg.Files(t)
	if err != nil {
		return err
	}

	record := lockfile.Asset{Name: t.Name, Kind: t.Kind}
	r.installed = append(r.installed, key)

	for _, file := range files {
		data, err := in.reg.Read(file)
		if err != nil {
			return err
		}

		rel := filepath.Join(r.cfg.InstallDir(t.Kind), filepath.FromSlash(t.RelPath(file)))
		dest := filepath.Join(in.root, rel)
		if err := utils.WriteFileAtomic(dest, data, 0644); err != nil {
			return fmt.Errorf("failed to copy %s: %w", file, err)
		}
		record.Files = append(record.Files, lockfile.File{
			Path:   filepath.ToSlash(rel),
			SHA256: utils.HashBytes(data),
		})
		in.log.Debug("copied template file", "src", file, "dest", rel)

		refs := scanner.ScanFrom(t.Kind, string(data))
		r.externals = append(r.externals, scanner.Unsatisfied(refs, r.deps)...)

		for _, ref := range refs {
			kind, ok := ref.Class.Kind()
			if !ok {
				continue
			}
			if err := in.installSibling(r, kind, ref.Name); err != nil {
				return err
			}
		}
	}

	r.lock.Upsert(record)
	return nil
}

// installSibling installs an asset referenced from another template unless it
// was already handled in this run or is already present in the project
func (in *Installer) installSibling(r *run, kind asset.Kind, name string) error {
	key := asset.Key{Kind: kind, Name: name}
	if r.visited[key] {
		return nil
	}

	t, err := in.reg.Resolve(kind, name)
	if err != nil {
		if !errors.Is(err, registry.ErrAssetNotFound) {
			return err
		}
		r.visited[key] = true
		r.missing = append(r.missing, key)
		in.out.Warning(fmt.Sprintf("%s %s is imported but has no template, skipping", kind.Label, name))
		in.log.Warn("sibling template not found", "asset", key.String())
		return nil
	}

	if r.visited[t.Key()] {
		return nil
	}
	if _, ok := in.findInstalled(r.cfg, t); ok {
		r.visited[t.Key()] = true
		r.skipped = append(r.skipped, t.Key())
		return nil
	}

	return in.installTemplate(r, t)
}

// installPackages hands the collected externals to the package manager once.
// A failure is reported and returned for the caller to surface; it never
// undoes the copy.
func (in *Installer) installPackages(ctx context.Context, manifest *packages.Manifest, externals []string) ([]string, error) {
	missing := manifest.Missing(externals)
	if len(missing) == 0 {
		return nil, nil
	}

	in.out.Info(fmt.Sprintf("Installing %s with %s", strings.Join(missing, ", "), in.pkgs.Manager()))
	if err := in.pkgs.InstallMissing(ctx, missing); err != nil {
		in.log.Error("package install failed", "packages", missing, "error", err)
		in.out.Warning(fmt.Sprintf("Could not install packages, run manually: %s", strings.Join(in.pkgs.Command(missing), " ")))
		return missing, err
	}
	return missing, nil
}

// findInstalled returns the project path holding t, if present. File
// templates also match an installed file with a different extension.
func (in *Installer) findInstalled(cfg *config.Config, t *registry.Template) (string, bool) {
	dir := filepath.Join(in.root, cfg.InstallDir(t.Kind))

	exact := filepath.Join(dir, t.DestRoot())
	if _, err := os.Stat(exact); err == nil {
		return exact, true
	}
	if t.IsDir {
		return "", false
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			in.log.Warn("failed to list install directory", "dir", dir, "error", err)
		}
		return "", false
	}
	for _, e := range entries {
		if !e.IsDir() && utils.TrimExt(e.Name()) == t.Name {
			return filepath.Join(dir, e.Name()), true
		}
	}
	return "", false
}
