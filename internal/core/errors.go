package core

import "errors"

// File-level failures. Line-level problems are never errors; they are
// reported as diagnostics in ImportOutcome.
var (
	// ErrNotFound is returned when the import path does not reference an
	// existing file.
	ErrNotFound = errors.New("roster file not found")

	// ErrEmptyInput is returned when the roster has no header line.
	ErrEmptyInput = errors.New("roster file is empty")

	// ErrIOFailure is returned when an export cannot create its directory or
	// write its file.
	ErrIOFailure = errors.New("roster write failed")

	// ErrInvalidFileType is returned by the service when an explicit import
	// path does not end in .csv.
	ErrInvalidFileType = errors.New("invalid file type: only .csv files are supported")

	// ErrFileTooLarge is returned when a roster exceeds the configured size.
	ErrFileTooLarge = errors.New("roster file too large")

	// ErrRunNotFound is returned when an import run is not in the history.
	ErrRunNotFound = errors.New("import run not found")
)
