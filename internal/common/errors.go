// Package common provides shared logging and error types used across the
// application.
package common

import (
	"errors"
	"fmt"
)

// Sentinel errors for the recoverable failure classes. None of these are
// fatal; every call site degrades or surfaces a status message instead of
// terminating.
var (
	// ErrInvalidAmount marks a form amount that did not parse or was not
	// positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidDate marks a form date that did not parse as YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrUnknownBackend marks an unrecognized storage backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// StoreError wraps a failure reading or writing the backing data files.
type StoreError struct {
	Err  error
	Op   string
	Path string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a StoreError for the given operation and path.
func NewStoreError(op, path string, err error) error {
	return &StoreError{Op: op, Path: path, Err: err}
}

// ImportError wraps a failure parsing an import file. Row is 1-based and 0
// when the failure is not tied to a specific row. An ImportError aborts the
// whole import; no rows are applied.
type ImportError struct {
	Err  error
	Path string
	Row  int
}

func (e *ImportError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("import %s row %d: %v", e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("import %s: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates an ImportError for the given file and row.
func NewImportError(path string, row int, err error) error {
	return &ImportError{Path: path, Row: row, Err: err}
}
