// Package apperr defines the error kinds shared across services so handlers
// can map failures to HTTP statuses without string matching.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input or a generated payload that failed
	// shape validation. Never retried.
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks an operation rejected by current state: duplicate
	// attempts, illegal status transitions, stale supersedes.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a missing entity.
	ErrNotFound = errors.New("not found")

	// ErrQuota marks a rate/quota failure from the generation backend.
	// Callers may cascade to a fallback model; nothing else is retried.
	ErrQuota = errors.New("quota exceeded")
)

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }
func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsQuota(err error) bool      { return errors.Is(err, ErrQuota) }
