package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/torch-corp/glare/internal/asset"
	"github.com/torch-corp/glare/internal/utils"
)

// FileName is the project-level configuration file written by `glare init`
const FileName = "glare.json"

var (
	// ErrConfigMissing is returned when glare.json does not exist in the project root
	ErrConfigMissing = errors.New("configuration not found, run 'glare init' first")
	// ErrConfigCorrupt is returned when glare.json cannot be parsed
	ErrConfigCorrupt = errors.New("configuration file is not valid JSON")
)

// Config represents the install configuration of a consumer project
type Config struct {
	// Path is the install root relative to the project root (e.g. "src")
	Path string `json:"path"`

	// Aliases overrides the install directory for individual kinds,
	// keyed by kind directory name ("components", "hooks", ...)
	Aliases map[string]string `json:"aliases,omitempty"`
}

// InstallDir returns the directory, relative to the project root, that assets
// of the given kind are copied into
func (c *Config) InstallDir(kind asset.Kind) string {
	if alias, ok := c.Aliases[kind.Dir]; ok && alias != "" {
		return utils.CleanRelPath(alias)
	}
	return filepath.Join(utils.CleanRelPath(c.Path), kind.Dir)
}

// Path returns the absolute path of glare.json for a project root
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Exists checks if a configuration file exists in the project root
func Exists(root string) bool {
	return utils.FileExists(Path(root))
}

// Load loads the configuration from the project root
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(Path(root))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigMissing
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigCorrupt, FileName, err)
	}

	if cfg.Path == "" {
		cfg.Path = "."
	}

	return &cfg, nil
}

// Save writes the configuration to the project root
func Save(root string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(Path(root), data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Init writes glare.json with the given install path unless one already exists.
// An empty path is detected from the project layout. created reports whether
// a new file was written; an existing file is returned untouched.
func Init(root, path string) (cfg *Config, created bool, err error) {
	if Exists(root) {
		cfg, err := Load(root)
		return cfg, false, err
	}

	if path == "" {
		path = DetectBasePath(root)
	}

	cfg = &Config{Path: utils.CleanRelPath(path)}
	if err := Save(root, cfg); err != nil {
		return nil, false, err
	}

	return cfg, true, nil
}

// tsConfig is the subset of tsconfig.json/jsconfig.json we care about
type tsConfig struct {
	CompilerOptions struct {
		Paths map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// DetectBasePath picks the install root for a project: the target of the
// first "<alias>/*" path mapping in tsconfig.json or jsconfig.json, else
// "src" when a src directory exists, else the project root.
func DetectBasePath(root string) string {
	for _, name := range []string{"tsconfig.json", "jsconfig.json"} {
		if target, ok := aliasTarget(filepath.Join(root, name)); ok {
			return target
		}
	}

	if utils.IsDirectory(filepath.Join(root, "src")) {
		return "src"
	}

	return "."
}

func aliasTarget(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	// tsconfig files routinely carry comments and trailing commas
	std, err := hujson.Standardize(data)
	if err != nil {
		return "", false
	}

	var ts tsConfig
	if err := json.Unmarshal(std, &ts); err != nil {
		return "", false
	}

	// first matching alias in lexical order
	var keys []string
	for key := range ts.CompilerOptions.Paths {
		if strings.HasSuffix(key, "/*") {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return "", false
	}
	slices.Sort(keys)

	targets := ts.CompilerOptions.Paths[keys[0]]
	if len(targets) == 0 {
		return "", false
	}

	return utils.CleanRelPath(strings.TrimSuffix(targets[0], "*")), true
}
