package linter

import "github.com/addonreview/cachelint/errors"

const (
	// ErrInvalidOptions is returned by Analyze when the domains or segment are unusable.
	ErrInvalidOptions = errors.Error("invalid options")
	// ErrInvalidConfig is returned when a configuration file fails schema or semantic validation.
	ErrInvalidConfig = errors.Error("invalid config")
	// ErrTimeout is wrapped by diagnostics for files whose analysis was abandoned.
	ErrTimeout = errors.Error("analysis timed out")
	// ErrUnsupportedFile is returned when a path given for linting is not a script source.
	ErrUnsupportedFile = errors.Error("unsupported file")
	// ErrNoFiles is returned when discovery finds nothing to lint.
	ErrNoFiles = errors.Error("no files to lint")
)
