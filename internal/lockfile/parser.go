package lockfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/torch-corp/glare/internal/utils"
)

// Parse parses a lock file from bytes
func Parse(data []byte) (*LockFile, error) {
	var lockFile LockFile

	if err := toml.Unmarshal(data, &lockFile); err != nil {
		return nil, fmt.Errorf("failed to parse lock file: %w", err)
	}

	return &lockFile, nil
}

// ParseFile parses a lock file from a file path
func ParseFile(filePath string) (*LockFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file: %w", err)
	}

	return Parse(data)
}

// ErrCorrupt is returned by Load when glare.lock exists but cannot be parsed or validated
var ErrCorrupt = errors.New("lock file is corrupt")

// Load reads the project's glare.lock, returning an empty lock file when none exists
func Load(root, createdBy string) (*LockFile, error) {
	data, err := os.ReadFile(Path(root))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(createdBy), nil
		}
		return nil, fmt.Errorf("failed to read lock file: %w", err)
	}

	lf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := lf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %v", ErrCorrupt, FileName, err)
	}
	return lf, nil
}

// Marshal converts a lock file to TOML bytes
func Marshal(lockFile *LockFile) ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := toml.NewEncoder(buf)

	if err := encoder.Encode(lockFile); err != nil {
		return nil, fmt.Errorf("failed to marshal lock file: %w", err)
	}

	return buf.Bytes(), nil
}

// Write sorts and writes a lock file to a file path
func Write(lockFile *LockFile, filePath string) error {
	lockFile.Sort()

	data, err := Marshal(lockFile)
	if err != nil {
		return err
	}

	if err := utils.WriteFileAtomic(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write lock file: %w", err)
	}

	return nil
}
