package installer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"

	"github.com/torch-corp/glare/internal/cache"
)

// DefaultLockTimeout bounds how long a command waits for another glare
// process working on the same project
const DefaultLockTimeout = 10 * time.Second

// ErrProjectLocked is returned when another process holds the project lock
// for longer than the lock timeout
var ErrProjectLocked = errors.New("another glare process is modifying this project")

// acquireProjectLock takes the cross-process lock for a project root. The
// lock file lives in the cache directory, never in the project.
func acquireProjectLock(ctx context.Context, root string, timeout time.Duration) (*flock.Flock, error) {
	lockPath, err := cache.GetProjectLockPath(root)
	if err != nil {
		return nil, fmt.Errorf("failed to get project lock path: %w", err)
	}

	if err := cache.EnsureCacheDirs(); err != nil {
		return nil, err
	}

	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	fileLock := flock.New(lockPath)
	locked, err := fileLock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrProjectLocked
		}
		return nil, fmt.Errorf("failed to acquire project lock: %w", err)
	}
	if !locked {
		return nil, ErrProjectLocked
	}

	return fileLock, nil
}
