// Package siteerr provides a lightweight structured error type (BuildError)
// for kind-based classification of build failures across the pipeline.
package siteerr

import (
	"errors"
	"fmt"
)

// Kind classifies where in the pipeline a build error originated.
type Kind string

const (
	// Traversal errors
	KindMetadataRead    Kind = "metadata_read"
	KindDirectoryRead   Kind = "directory_read"
	KindFileRead        Kind = "file_read"
	KindInvalidFileName Kind = "invalid_file_name"

	// Render errors
	KindCollision Kind = "output_collision"

	// Output errors
	KindWrite           Kind = "write"
	KindDirectoryCreate Kind = "directory_create"
	KindAssetCopy       Kind = "asset_copy"

	// Configuration errors
	KindConfig Kind = "config"
)

// BuildError is a structured error carrying the failure kind, the offending
// filesystem path and the underlying cause.
type BuildError struct {
	Kind  Kind
	Path  string
	Msg   string
	Cause error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	switch {
	case e.Path != "" && e.Cause != nil:
		return fmt.Sprintf("%s: %s: %s: %v", e.Kind, e.Msg, e.Path, e.Cause)
	case e.Path != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Msg, e.Path)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

// Unwrap implements error unwrapping for Go 1.13+ error handling.
func (e *BuildError) Unwrap() error {
	return e.Cause
}

// New creates a new BuildError.
func New(kind Kind, path, msg string) *BuildError {
	return &BuildError{Kind: kind, Path: path, Msg: msg}
}

// Wrap creates a new BuildError that wraps an existing error.
func Wrap(err error, kind Kind, path, msg string) *BuildError {
	return &BuildError{Kind: kind, Path: path, Msg: msg, Cause: err}
}

// KindOf extracts the kind from an error chain, or "" when no BuildError is present.
func KindOf(err error) Kind {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// IsKind checks whether an error chain contains a BuildError of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// PathOf extracts the offending path from an error chain, or "" when unknown.
func PathOf(err error) string {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Path
	}
	return ""
}
