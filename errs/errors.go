// Package errs defines sentinel errors shared across the dynarr packages.
//
// All errors returned by this module either are one of these sentinels or wrap
// one via fmt.Errorf("%w: ..."), so callers can classify failures with
// errors.Is without parsing messages.
package errs

import "errors"

var (
	// ErrAllocExhausted indicates the underlying allocator reported failure.
	// The container is left in its exact prior state when this is returned.
	ErrAllocExhausted = errors.New("allocator exhausted")

	// ErrInvalidElemSize indicates a non-positive element size was given at creation.
	ErrInvalidElemSize = errors.New("invalid element size")
)
