// Package errors provides error handling for shapegen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Assertion failures for programming errors
//
// Usage:
//
//	// Wrap with context
//	if err := resolve(shape); err != nil {
//	    return errors.Wrapf(err, "resolving %s", shape.ID)
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrEmptyClosure) {
//	    // nothing to generate
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Assertions and panics
var (
	AssertionFailedf                 = crdb.AssertionFailedf
	NewAssertionErrorWithWrappedErrf = crdb.NewAssertionErrorWithWrappedErrf
)

// Sentinel errors for the generation engine.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrapf() to add shape or trait context while
// preserving the type.
var (
	// ErrUnresolvedReference indicates a shape's target could not be
	// resolved to a symbol (dangling reference in the model graph)
	ErrUnresolvedReference = New("unresolved shape reference")

	// ErrUnmatchedAnnotation indicates a trait initializer matched a trait
	// but no target symbol mapping exists for its identifier
	ErrUnmatchedAnnotation = New("no initializer mapping for trait")

	// ErrEmptyClosure indicates closure computation yielded no top-level
	// shapes, so there is nothing to generate
	ErrEmptyClosure = New("no shapes found in closure")

	// ErrUnsupportedValue indicates the metadata compiler reached a value
	// kind with no defined Rust literal form
	ErrUnsupportedValue = New("no literal form for value")
)

// IsUnresolvedReference checks if an error is or wraps ErrUnresolvedReference
func IsUnresolvedReference(err error) bool {
	return err != nil && Is(err, ErrUnresolvedReference)
}

// IsEmptyClosure checks if an error is or wraps ErrEmptyClosure
func IsEmptyClosure(err error) bool {
	return err != nil && Is(err, ErrEmptyClosure)
}

// WrapUnresolved wraps a dangling-reference failure with the identifier of
// the shape whose resolution failed
func WrapUnresolved(target, owner string) error {
	return Wrapf(ErrUnresolvedReference, "could not find shape %s targeted by %s", target, owner)
}

// WrapUnmatched wraps a missing trait mapping with the trait and owning
// shape identifiers for diagnosability
func WrapUnmatched(trait, owner string) error {
	return Wrapf(ErrUnmatchedAnnotation, "trait %s on %s", trait, owner)
}
