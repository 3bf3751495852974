// Package runlock guards an output directory against concurrent wavemill
// runs. Collision-free output naming is only deterministic while a single
// process owns the directory listing, so each batch takes an exclusive flock
// on a lock file inside its output directory for the duration of the run.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created inside the guarded output directory.
const LockFileName = ".wavemill.lock"

// Lock holds an exclusive lock on an output directory.
type Lock struct {
	path string
	lock *flock.Flock
}

// Acquire takes the lock for dir, creating dir if needed. A held lock from
// another process is an immediate error, not a wait.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %q: %w", dir, err)
	}

	path := filepath.Join(dir, LockFileName)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("another wavemill run is already writing to %s (lock: %s)", dir, path)
	}
	return &Lock{path: path, lock: lock}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and removes the lock file.
func (l *Lock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove lock %s: %w", l.path, err)
	}
	return nil
}
