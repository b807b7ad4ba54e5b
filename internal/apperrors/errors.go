// Package apperrors defines the error taxonomy shared by the ingestion,
// categorization and analysis services. Callers are expected to match on the
// concrete types with errors.As (or on the behavior helpers below) rather
// than parsing error strings.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports rejected input: an empty statement file, an empty
// transaction list, or a malformed request value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// NotFoundError reports a missing owner, transaction or analysis collection.
type NotFoundError struct {
	Kind string // "user", "transaction", "analysis"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// ParseError reports a structurally broken statement row. Row is the
// zero-based index into the uploaded sheet, so the caller can point the user
// at the offending line.
type ParseError struct {
	Format string
	Row    int
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: row %d: failed to parse %s: %v", e.Format, e.Row, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// EngineError reports an analysis engine failure: transport error, timeout,
// or a response that does not decode into the expected shape. It always
// aborts the analyze call with no partial write.
type EngineError struct {
	Stage string // "request", "timeout", "decode"
	Err   error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("analysis engine %s failed: %v", e.Stage, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// ConflictError reports a unique-constraint race (dedup key or owner+month)
// that survived the single transparent retry.
type ConflictError struct {
	Constraint string
	Err        error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %v", e.Constraint, e.Err)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
