// Package fileutil provides file and path helpers for writing migration output.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// LockFileName is created inside an output folder while a run owns it.
const LockFileName = ".db2md.lock"

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
	ErrFolderLocked           = errors.New("output folder is locked by another run")
)

// WriteTempFile creates a temporary file with the given content and extension.
// Returns the file path and a cleanup function to remove the file.
func WriteTempFile(content, extension string) (path string, cleanup func(), err error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	tmpFile, err := os.CreateTemp("", "db2md-*."+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, writeErr := tmpFile.WriteString(content); writeErr != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", writeErr)
	}

	if closeErr := tmpFile.Close(); closeErr != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", closeErr)
	}

	return path, cleanup, nil
}

// ValidateExtension checks that the extension is safe for use in temp file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// WriteFile writes content to path, creating parent directories as needed.
// Existing files are overwritten.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), FilePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// SetModTime sets the modification time of path, leaving access time at now.
func SetModTime(path string, mtime time.Time) error {
	if err := os.Chtimes(path, time.Now(), mtime); err != nil {
		return fmt.Errorf("setting mtime of %s: %w", path, err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsURL returns true if the string looks like an absolute web URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http")
}

// LockDir takes an exclusive, non-blocking lock on dir for the lifetime of a run.
// The returned function releases it. Returns ErrFolderLocked when another
// process holds the lock.
func LockDir(dir string) (unlock func() error, err error) {
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	fl := flock.New(filepath.Join(dir, LockFileName))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("locking %s: %w", dir, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFolderLocked, dir)
	}

	return func() error {
		if err := fl.Unlock(); err != nil {
			return err
		}
		return os.Remove(fl.Path())
	}, nil
}
