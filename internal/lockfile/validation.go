package lockfile

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// sha256Regex matches hex-encoded sha256 digests
var sha256Regex = regexp.MustCompile(`^[0-9a-f]{64}$`)

// Validate validates the entire lock file
func (lf *LockFile) Validate() error {
	if lf.LockVersion == "" {
		return fmt.Errorf("lock-version is required")
	}

	if _, err := semver.NewVersion(lf.LockVersion); err != nil {
		return fmt.Errorf("invalid lock-version %q: %w", lf.LockVersion, err)
	}

	if lf.CreatedBy == "" {
		return fmt.Errorf("created-by is required")
	}

	seen := make(map[string]bool)
	for i := range lf.Assets {
		a := &lf.Assets[i]
		if err := a.Validate(); err != nil {
			return fmt.Errorf("asset %d (%s): %w", i, a.Name, err)
		}

		key := a.Key().String()
		if seen[key] {
			return fmt.Errorf("duplicate asset: %s", key)
		}
		seen[key] = true
	}

	return nil
}

// Validate validates a single asset record
func (a *Asset) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("name is required")
	}

	if !a.Kind.IsValid() {
		return fmt.Errorf("invalid kind %q", a.Kind.Key)
	}

	for _, f := range a.Files {
		if f.Path == "" {
			return fmt.Errorf("file path is required")
		}
		if !sha256Regex.MatchString(f.SHA256) {
			return fmt.Errorf("file %s: sha256 must be 64 lowercase hex characters", f.Path)
		}
	}

	return nil
}
