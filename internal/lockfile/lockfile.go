package lockfile

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/torch-corp/glare/internal/asset"
)

// FileName is the install manifest written next to glare.json
const FileName = "glare.lock"

// CurrentLockVersion is the lock-version written by this build
const CurrentLockVersion = "1.0"

// LockFile records which template assets were installed into a project and
// the hashes of the files as they were copied.
type LockFile struct {
	LockVersion string  `toml:"lock-version"`
	CreatedBy   string  `toml:"created-by"`
	Assets      []Asset `toml:"assets"`
}

// Asset is one installed template asset
type Asset struct {
	Name  string     `toml:"name"`
	Kind  asset.Kind `toml:"kind"`
	Files []File     `toml:"files"`
}

// File is one copied file, path relative to the project root (slash-separated)
type File struct {
	Path   string `toml:"path"`
	SHA256 string `toml:"sha256"`
}

// New creates an empty lock file stamped with the creator
func New(createdBy string) *LockFile {
	return &LockFile{
		LockVersion: CurrentLockVersion,
		CreatedBy:   createdBy,
	}
}

// Path returns the lock file location for a project root
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// String returns a string representation of the asset
func (a *Asset) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Kind)
}

// Key returns the asset's identity
func (a *Asset) Key() asset.Key {
	return asset.Key{Kind: a.Kind, Name: a.Name}
}

// Find returns the recorded asset for kind/name, or nil
func (lf *LockFile) Find(kind asset.Kind, name string) *Asset {
	for i := range lf.Assets {
		if lf.Assets[i].Kind.Key == kind.Key && lf.Assets[i].Name == name {
			return &lf.Assets[i]
		}
	}
	return nil
}

// Upsert replaces the record for the asset's kind/name or appends it
func (lf *LockFile) Upsert(a Asset) {
	if existing := lf.Find(a.Kind, a.Name); existing != nil {
		*existing = a
		return
	}
	lf.Assets = append(lf.Assets, a)
}

// Remove drops the record for kind/name, reporting whether one existed
func (lf *LockFile) Remove(kind asset.Kind, name string) bool {
	for i := range lf.Assets {
		if lf.Assets[i].Kind.Key == kind.Key && lf.Assets[i].Name == name {
			lf.Assets = append(lf.Assets[:i], lf.Assets[i+1:]...)
			return true
		}
	}
	return false
}

// Sort orders assets by kind (in AllKinds order) then name, and files by path
func (lf *LockFile) Sort() {
	order := make(map[string]int)
	for i, k := range asset.AllKinds() {
		order[k.Key] = i
	}

	sort.SliceStable(lf.Assets, func(i, j int) bool {
		a, b := lf.Assets[i], lf.Assets[j]
		if order[a.Kind.Key] != order[b.Kind.Key] {
			return order[a.Kind.Key] < order[b.Kind.Key]
		}
		return a.Name < b.Name
	})
	for i := range lf.Assets {
		files := lf.Assets[i].Files
		sort.Slice(files, func(x, y int) bool { return files[x].Path < files[y].Path })
	}
}

// ModifiedFiles compares recorded hashes with the given current hashes
// (keyed by path) and returns the recorded paths whose content changed or
// that are gone.
func (a *Asset) ModifiedFiles(current map[string]string) []string {
	var modified []string
	for _, f := range a.Files {
		if hash, ok := current[f.Path]; !ok || hash != f.SHA256 {
			modified = append(modified, f.Path)
		}
	}
	return modified
}
