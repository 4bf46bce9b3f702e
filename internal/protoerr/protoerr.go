// Package protoerr defines the closed set of failure kinds raised while
// decoding definitions and resolving the registry. Callers classify errors
// with errors.Is against the exported sentinels; the constructor functions
// attach human-readable context and wrap the matching sentinel.
package protoerr

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch marks a dynamic value of the wrong kind, or outside a
	// declared numeric/string range, for the field being bound.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrMissingMandatoryField marks an absent field whose mandatory
	// predicate held and which had no default.
	ErrMissingMandatoryField = errors.New("missing mandatory field")

	// ErrInvariantViolation marks a failed struct-level post-check.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrNoMatchingVariant marks an input whose shape matched none of a
	// dispatcher's predicates.
	ErrNoMatchingVariant = errors.New("no matching variant")

	// ErrUnknownVariantTag marks an explicit discriminator value with no
	// registered variant.
	ErrUnknownVariantTag = errors.New("unknown variant tag")

	// ErrDuplicateName marks an insertion colliding with an existing name
	// inside the same category.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrPrototypeNotFound marks a lookup or reference resolution that found
	// no record under the given category and name.
	ErrPrototypeNotFound = errors.New("prototype not found")

	// ErrAbstractFind marks a direct lookup against an abstract union
	// category, which has no storage of its own.
	ErrAbstractFind = errors.New("cannot find against abstract category")

	// ErrAbstractExtend marks an insertion into an abstract union category.
	ErrAbstractExtend = errors.New("cannot extend abstract category")
)

func mark(kind error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}

// TypeMismatchf returns an error wrapping ErrTypeMismatch.
func TypeMismatchf(format string, args ...any) error {
	return mark(ErrTypeMismatch, format, args...)
}

// MissingMandatoryFieldf returns an error wrapping ErrMissingMandatoryField.
func MissingMandatoryFieldf(format string, args ...any) error {
	return mark(ErrMissingMandatoryField, format, args...)
}

// Invariantf returns an error wrapping ErrInvariantViolation.
func Invariantf(format string, args ...any) error {
	return mark(ErrInvariantViolation, format, args...)
}

// NoMatchingVariantf returns an error wrapping ErrNoMatchingVariant.
func NoMatchingVariantf(format string, args ...any) error {
	return mark(ErrNoMatchingVariant, format, args...)
}

// UnknownVariantTagf returns an error wrapping ErrUnknownVariantTag.
func UnknownVariantTagf(format string, args ...any) error {
	return mark(ErrUnknownVariantTag, format, args...)
}

// DuplicateNamef returns an error wrapping ErrDuplicateName.
func DuplicateNamef(format string, args ...any) error {
	return mark(ErrDuplicateName, format, args...)
}

// NotFoundf returns an error wrapping ErrPrototypeNotFound.
func NotFoundf(format string, args ...any) error {
	return mark(ErrPrototypeNotFound, format, args...)
}

// AbstractFindf returns an error wrapping ErrAbstractFind.
func AbstractFindf(format string, args ...any) error {
	return mark(ErrAbstractFind, format, args...)
}

// AbstractExtendf returns an error wrapping ErrAbstractExtend.
func AbstractExtendf(format string, args ...any) error {
	return mark(ErrAbstractExtend, format, args...)
}
