package buildinfo

import "fmt"

var (
	// Version will be set via ldflags during build
	Version = "dev"
	// Commit will be set via ldflags during build
	Commit = "none"
	// Date will be set via ldflags during build
	Date = "unknown"
)

// GetCreatedBy returns the "created-by" string for install manifests
func GetCreatedBy() string {
	return fmt.Sprintf("glare/%s", Version)
}
