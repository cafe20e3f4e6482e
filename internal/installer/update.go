package installer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/torch-corp/glare/internal/asset"
	"github.com/torch-corp/glare/internal/config"
	"github.com/torch-corp/glare/internal/lockfile"
	"github.com/torch-corp/glare/internal/packages"
	"github.com/torch-corp/glare/internal/registry"
	"github.com/torch-corp/glare/internal/tailwind"
	"github.com/torch-corp/glare/internal/utils"
)

// UpdatePrompt is asked before update overwrites anything
const UpdatePrompt = "Update will overwrite every installed asset with its latest template, discarding local edits. Continue?"

// UpdateResult summarizes an Update
type UpdateResult struct {
	// Declined is set when the user cancelled at the confirmation prompt
	Declined bool
	// Updated lists installed assets that were re-copied
	Updated []asset.Key
	// Installed lists sibling assets that were missing and got installed
	Installed []asset.Key
	// Unresolved lists installed entries with no matching template
	Unresolved []asset.Key
	// Modified lists assets whose files differed from glare.lock before overwrite
	Modified []asset.Key
	// Missing lists sibling references that no template satisfies
	Missing    []asset.Key
	Packages   []string
	PackageErr error
	Tailwind   *tailwind.Result
}

// installedEntry is one file or directory found in a kind's install directory
type installedEntry struct {
	kind asset.Kind
	name string
	path string
}

// Update re-copies every installed asset from its current template, then
// installs newly needed packages and re-runs the Tailwind setup
func (in *Installer) Update(ctx context.Context) (*UpdateResult, error) {
	cfg, err := config.Load(in.root)
	if err != nil {
		return nil, err
	}

	if !in.assumeYes {
		if in.confirm == nil {
			return &UpdateResult{Declined: true}, nil
		}
		ok, err := in.confirm.Confirm(UpdatePrompt)
		if err != nil {
			return nil, err
		}
		if !ok {
			in.log.Info("update declined")
			return &UpdateResult{Declined: true}, nil
		}
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

	entries, err := in.listInstalled(cfg)
	if err != nil {
		return nil, err
	}

	res := &UpdateResult{}
	r := in.newRun(cfg, manifest, lf)

	var bar *progressbar.ProgressBar
	if len(entries) > 0 && in.out.Interactive() {
		bar = progressbar.NewOptions64(
			int64(len(entries)),
			progressbar.OptionSetWriter(in.out.ErrWriter()),
			progressbar.OptionSetDescription("Updating assets"),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	for _, e := range entries {
		if bar != nil {
			bar.Describe(fmt.Sprintf("Updating %s", e.name))
		}
		if err := in.updateEntry(r, res, e); err != nil {
			return nil, err
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	in.pruneLock(r, entries)

	updated := make(map[asset.Key]bool, len(res.Updated))
	for _, k := range res.Updated {
		updated[k] = true
	}
	for _, k := range r.installed {
		if !updated[k] {
			res.Installed = append(res.Installed, k)
		}
	}
	res.Missing = r.missing

	res.Packages, res.PackageErr = in.installPackages(ctx, manifest, r.externals)

	if err := lockfile.Write(r.lock, lockfile.Path(in.root)); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", lockfile.FileName, err)
	}

	tw, err := tailwind.Setup(in.root, cfg.Path, manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to update tailwind setup: %w", err)
	}
	res.Tailwind = tw

	in.log.Info("update complete",
		"updated", len(res.Updated),
		"installed", len(res.Installed),
		"unresolved", len(res.Unresolved),
		"modified", len(res.Modified))

	return res, nil
}

func (in *Installer) updateEntry(r *run, res *UpdateResult, e installedEntry) error {
	t, err := in.reg.Resolve(e.kind, e.name)
	if err != nil {
		if !errors.Is(err, registry.ErrAssetNotFound) {
			return err
		}
		key := asset.Key{Kind: e.kind, Name: e.name}
		res.Unresolved = append(res.Unresolved, key)
		in.out.Warning(fmt.Sprintf("%s %s has no template anymore, skipping", e.kind.Label, e.name))
		in.log.Warn("installed asset has no template", "asset", key.String())
		return nil
	}

	// already re-copied in this run as another asset's sibling
	if r.copied[t.Key()] {
		return nil
	}

	if recorded := r.lock.Find(t.Kind, t.Name); recorded != nil {
		if modified := recorded.ModifiedFiles(in.currentHashes(recorded)); len(modified) > 0 {
			res.Modified = append(res.Modified, t.Key())
			in.out.Warning(fmt.Sprintf("%s %s has local changes that will be overwritten: %s",
				t.Kind.Label, t.Name, strings.Join(modified, ", ")))
		}
	}

	if err := os.RemoveAll(e.path); err != nil {
		return fmt.Errorf("failed to remove %s: %w", e.path, err)
	}
	if err := in.installTemplate(r, t); err != nil {
		return err
	}
	res.Updated = append(res.Updated, t.Key())
	return nil
}

// listInstalled returns the entries of every kind's install directory, kinds
// in AllKinds order and names sorted. Hidden entries are ignored. When aliases
// point several kinds at one directory, each entry takes the first of those
// kinds the registry has a template for.
func (in *Installer) listInstalled(cfg *config.Config) ([]installedEntry, error) {
	var dirs []string
	kindsByDir := make(map[string][]asset.Kind)
	for _, kind := range asset.AllKinds() {
		dir := filepath.Join(in.root, cfg.InstallDir(kind))
		if _, ok := kindsByDir[dir]; !ok {
			dirs = append(dirs, dir)
		}
		kindsByDir[dir] = append(kindsByDir[dir], kind)
	}

	var entries []installedEntry
	for _, dir := range dirs {
		dirEntries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}

		kinds := kindsByDir[dir]
		for _, d := range dirEntries {
			if strings.HasPrefix(d.Name(), ".") {
				continue
			}
			name := d.Name()
			if !d.IsDir() {
				name = utils.TrimExt(name)
			}
			entries = append(entries, installedEntry{
				kind: in.sharedDirKind(kinds, name),
				name: name,
				path: filepath.Join(dir, d.Name()),
			})
		}
	}

	return entries, nil
}

func (in *Installer) sharedDirKind(kinds []asset.Kind, name string) asset.Kind {
	if len(kinds) > 1 {
		for _, k := range kinds {
			if _, err := in.reg.Resolve(k, name); err == nil {
				return k
			}
		}
	}
	return kinds[0]
}

// currentHashes hashes the files a lock record lists, skipping ones that are gone
func (in *Installer) currentHashes(a *lockfile.Asset) map[string]string {
	current := make(map[string]string, len(a.Files))
	for _, f := range a.Files {
		hash, err := utils.HashFile(filepath.Join(in.root, filepath.FromSlash(f.Path)))
		if err != nil {
			continue
		}
		current[f.Path] = hash
	}
	return current
}

// pruneLock drops lock records for assets that are no longer in the project
func (in *Installer) pruneLock(r *run, entries []installedEntry) {
	present := make(map[asset.Key]bool, len(entries))
	for _, e := range entries {
		present[asset.Key{Kind: e.kind, Name: e.name}] = true
	}

	for _, a := range slices.Clone(r.lock.Assets) {
		key := a.Key()
		if present[key] || r.copied[key] {
			continue
		}
		r.lock.Remove(a.Kind, a.Name)
		in.log.Info("dropped lock record for removed asset", "asset", key.String())
	}
}
