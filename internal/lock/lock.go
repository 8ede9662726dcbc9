// Package lock guards an output directory against concurrent runs with an
// advisory file lock.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// ErrLocked is returned when another run holds the lock.
var ErrLocked = errors.New("output directory is in use by another audioconvert run")

// Lock is a held run lock.
type Lock struct {
	path string
	fl   *flock.Flock
}

// PathFor returns the lock file used for outputDir. The file lives in
// os.TempDir so the output directory only ever contains converted audio.
// The name is a stable SHA-1 UUID of the directory's absolute path with
// symlinks resolved, so every alias of one directory shares a lock.
func PathFor(outputDir string) (string, error) {
	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", outputDir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+filepath.Clean(abs)))
	return filepath.Join(os.TempDir(), "audioconvert-"+id.String()+".lock"), nil
}

// Acquire takes the lock for outputDir without blocking.
func Acquire(outputDir string) (*Lock, error) {
	path, err := PathFor(outputDir)
	if err != nil {
		return nil, err
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, outputDir)
	}
	return &Lock{path: path, fl: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string { return l.path }

// Release unlocks the lock. The lock file is left in place: unlinking it
// would let a waiting run lock the old inode while a new run locks a fresh
// file at the same path.
func (l *Lock) Release() error {
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
