package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/torch-corp/glare/internal/asset"
	"github.com/torch-corp/glare/internal/utils"
)

// EnvRegistry points glare at a template directory instead of the embedded one
const EnvRegistry = "GLARE_REGISTRY"

// ErrAssetNotFound is returned when a name does not match any template of a kind
var ErrAssetNotFound = errors.New("asset not found")

// Template is a single installable asset in the registry: either one source
// file or a directory of files.
type Template struct {
	Kind  asset.Kind
	Name  string
	Path  string // slash-separated path inside the registry FS
	IsDir bool
}

// Registry is a read-only view over a tree of templates laid out as
// <kind dir>/<asset>.
type Registry struct {
	fsys   fs.FS
	source string
}

// New creates a Registry over fsys. source is a human-readable origin used in messages.
func New(fsys fs.FS, source string) *Registry {
	return &Registry{fsys: fsys, source: source}
}

// Embedded returns the registry bundled with the binary
func Embedded() *Registry {
	return New(EmbeddedFS(), "embedded")
}

// Open returns a registry rooted at dir, or the embedded registry when dir is
// empty. GLARE_REGISTRY is consulted when dir is empty.
func Open(dir string) (*Registry, error) {
	if dir == "" {
		dir = os.Getenv(EnvRegistry)
	}
	if dir == "" {
		return Embedded(), nil
	}

	dir, err := utils.NormalizePath(dir)
	if err != nil {
		return nil, err
	}
	if !utils.IsDirectory(dir) {
		return nil, fmt.Errorf("template registry %s is not a directory", dir)
	}

	return New(os.DirFS(dir), dir), nil
}

// Source describes where templates are read from
func (r *Registry) Source() string {
	return r.source
}

// List returns the names of all templates of a kind, sorted. Files are named
// by their basename without extension, directories by their basename.
func (r *Registry) List(kind asset.Kind) ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, kind.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", kind.Dir, err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()
		if !entry.IsDir() {
			name = utils.TrimExt(name)
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}

// Resolve finds the template for name, matching the exact entry name first
// and then the entry name with its extension stripped.
func (r *Registry) Resolve(kind asset.Kind, name string) (*Template, error) {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("%w: %s %q", ErrAssetNotFound, kind.Key, name)
	}

	entries, err := fs.ReadDir(r.fsys, kind.Dir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", kind.Dir, err)
	}

	var match fs.DirEntry
	for _, entry := range entries {
		if entry.Name() == name {
			match = entry
			break
		}
	}
	if match == nil {
		// entries are sorted, so the first stripped match wins deterministically
		for _, entry := range entries {
			if !entry.IsDir() && utils.TrimExt(entry.Name()) == name {
				match = entry
				break
			}
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s %q", ErrAssetNotFound, kind.Key, name)
	}

	t := &Template{
		Kind:  kind,
		Name:  name,
		Path:  path.Join(kind.Dir, match.Name()),
		IsDir: match.IsDir(),
	}
	if !t.IsDir {
		t.Name = utils.TrimExt(match.Name())
	}
	return t, nil
}

// Read returns the contents of a file inside the registry
func (r *Registry) Read(name string) ([]byte, error) {
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", name, err)
	}
	return data, nil
}

// Files returns every file belonging to a template, depth-first in lexical
// order. For a file template this is just its own path.
func (r *Registry) Files(t *Template) ([]string, error) {
	if !t.IsDir {
		return []string{t.Path}, nil
	}

	var files []string
	err := fs.WalkDir(r.fsys, t.Path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk template %s: %w", t.Path, err)
	}
	return files, nil
}

// RelPath returns where a template file lands relative to the kind's install
// directory: its basename for file templates, <name>/<sub path> for directories.
func (t *Template) RelPath(file string) string {
	if !t.IsDir {
		return path.Base(file)
	}
	rel := strings.TrimPrefix(file, t.Path)
	return path.Join(path.Base(t.Path), strings.TrimPrefix(rel, "/"))
}

// DestRoot returns the entry a template occupies inside the kind's install
// directory: the file's basename or the directory's name.
func (t *Template) DestRoot() string {
	return path.Base(t.Path)
}

// Key identifies the template in visited sets and results
func (t *Template) Key() asset.Key {
	return asset.Key{Kind: t.Kind, Name: t.Name}
}
