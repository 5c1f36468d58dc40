// Package filelock serializes resets across processes with an OS file lock.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vanshika-srivastava/coretest/internal/logging"
	"github.com/vanshika-srivastava/coretest/internal/ports"
)

// FileLock is an exclusive lock on a file shared by every process using the
// same path. It is not reentrant.
type FileLock struct {
	path string
}

// Compile-time interface verification
var _ ports.ResetLock = (*FileLock)(nil)

// New creates a lock on path; the file is created on first use
func New(path string) *FileLock {
	return &FileLock{path: path}
}

// Lock blocks until the lock is held and returns the function releasing it
func (l *FileLock) Lock() (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(l.path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(file); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	logging.Logger.Debug("Lock acquired", "path", l.path)

	return func() error {
		defer file.Close()
		if err := unlockFile(file); err != nil {
			return fmt.Errorf("failed to release lock: %w", err)
		}
		logging.Logger.Debug("Lock released", "path", l.path)
		return nil
	}, nil
}
