package autoupdate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creativeprojects/go-selfupdate"

	"github.com/torch-corp/glare/internal/buildinfo"
	"github.com/torch-corp/glare/internal/cache"
	"github.com/torch-corp/glare/internal/logger"
)

const (
	githubOwner     = "torch-corp"
	githubRepo      = "glare"
	checkInterval   = 24 * time.Hour
	updateCacheFile = "last-update-check"
	checkTimeout    = 10 * time.Second
)

// ErrDevBuild is returned when a development build is asked to update itself
var ErrDevBuild = errors.New("cannot update development builds, install from a release")

// isEnvTrue checks if an environment variable is set to a truthy value
func isEnvTrue(key string) bool {
	val := os.Getenv(key)
	switch val {
	case "1", "true", "TRUE", "yes", "YES", "on", "ON":
		return true
	}
	return false
}

// IsDevBuild reports whether the running binary was built without a release version
func IsDevBuild() bool {
	return buildinfo.Version == "dev" || buildinfo.Version == ""
}

func repository() selfupdate.Repository {
	return selfupdate.ParseSlug(fmt.Sprintf("%s/%s", githubOwner, githubRepo))
}

// Latest returns the newest published release, or nil when none is newer
// than the running version
func Latest(ctx context.Context) (*selfupdate.Release, error) {
	if IsDevBuild() {
		return nil, ErrDevBuild
	}

	latest, found, err := selfupdate.DetectLatest(ctx, repository())
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}
	_ = recordCheck()

	if !found || latest.LessOrEqual(buildinfo.Version) {
		return nil, nil
	}
	return latest, nil
}

// Apply replaces the running binary with the newest release
func Apply(ctx context.Context) (*selfupdate.Release, error) {
	if IsDevBuild() {
		return nil, ErrDevBuild
	}

	release, err := selfupdate.UpdateSelf(ctx, buildinfo.Version, repository())
	if err != nil {
		return nil, fmt.Errorf("failed to update: %w", err)
	}

	logger.Get().Info("self-update completed", "old_version", buildinfo.Version, "new_version", release.Version())
	return release, nil
}

// CheckInBackground looks for a newer release at most once per day. The
// returned channel yields a one-line notice when one exists and is closed
// otherwise. It never blocks the caller.
func CheckInBackground() <-chan string {
	notices := make(chan string, 1)

	go func() {
		defer close(notices)

		if isEnvTrue("GLARE_NO_UPDATE_CHECK") || IsDevBuild() || !shouldCheck() {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
		defer cancel()

		latest, err := Latest(ctx)
		if err != nil {
			logger.Get().Debug("background update check failed", "error", err)
			return
		}
		if latest != nil {
			notices <- fmt.Sprintf("glare %s is available (you have %s). Run 'glare self-update' to install it.",
				latest.Version(), buildinfo.Version)
		}
	}()

	return notices
}

// shouldCheck returns true if the last check is older than checkInterval
func shouldCheck() bool {
	cacheDir, err := cache.GetCacheDir()
	if err != nil {
		return true
	}

	info, err := os.Stat(filepath.Join(cacheDir, updateCacheFile))
	if err != nil {
		return true
	}

	return time.Since(info.ModTime()) > checkInterval
}

// recordCheck updates the timestamp of the last update check
func recordCheck() error {
	cacheDir, err := cache.GetCacheDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(cacheDir, updateCacheFile), []byte(time.Now().Format(time.RFC3339)), 0644)
}
