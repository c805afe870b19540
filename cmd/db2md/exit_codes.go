package main

import (
	"errors"
	"os"

	"github.com/alnah/go-db2md/internal/config"
	"github.com/alnah/go-db2md/internal/fileutil"
	"github.com/alnah/go-db2md/internal/logging"
	"github.com/alnah/go-db2md/internal/pandoc"
	"github.com/alnah/go-db2md/internal/source"
)

// Exit codes for db2md CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
// Individual documents failing never change the exit code of a run.
const (
	ExitSuccess = 0 // Run completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input kind
	ExitIO      = 3 // File not found, permission denied, folder locked
	ExitPandoc  = 4 // Pandoc missing or unusable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Pandoc errors (exit 4)
	if errors.Is(err, pandoc.ErrNotInstalled) ||
		errors.Is(err, pandoc.ErrPandocFailed) {
		return ExitPandoc
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtraMetadata) ||
		errors.Is(err, ErrNoOutFolder) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, source.ErrUnsupportedSource) ||
		errors.Is(err, source.ErrUnsupportedDump) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, fileutil.ErrFolderLocked) {
		return ExitIO
	}

	return ExitGeneral
}
