package packages

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestFile is the consumer project's package manifest
const ManifestFile = "package.json"

var (
	// ErrManifestMissing is returned when the project has no package.json
	ErrManifestMissing = errors.New("package.json not found in project root")
	// ErrManifestCorrupt is returned when package.json cannot be parsed
	ErrManifestCorrupt = errors.New("package.json is not valid JSON")
)

// Manifest is the dependency section of package.json
type Manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// LoadManifest reads package.json from the project root
func LoadManifest(root string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(root, ManifestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrManifestMissing
		}
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrManifestCorrupt, err)
	}

	return &m, nil
}

// All returns the union of dependencies and devDependencies, name to version range.
// A name in both keeps the dependencies entry.
func (m *Manifest) All() map[string]string {
	all := make(map[string]string, len(m.Dependencies)+len(m.DevDependencies))
	for name, version := range m.DevDependencies {
		all[name] = version
	}
	for name, version := range m.Dependencies {
		all[name] = version
	}
	return all
}

// Version returns the declared version range of a package, if any
func (m *Manifest) Version(name string) (string, bool) {
	if v, ok := m.Dependencies[name]; ok {
		return v, true
	}
	v, ok := m.DevDependencies[name]
	return v, ok
}

// Missing filters names down to packages not declared in the manifest,
// preserving order and dropping duplicates.
func (m *Manifest) Missing(names []string) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := m.Version(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
