package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// ErrUnsupportedVariant means no handler, direct or chained, matches the
	// input's variant tag.
	ErrUnsupportedVariant = errors.New("unsupported result variant")

	// ErrInvalidTerm means term-name input was empty or malformed.
	ErrInvalidTerm = errors.New("invalid term")

	// ErrDomain means a numeric input was outside a function's valid domain
	// (probability outside [0,1], confidence level outside (0,1)).
	ErrDomain = errors.New("value outside valid domain")

	// ErrMissingField means an expected statistic is absent for a term. It is
	// always recovered by omission at the assembler and never surfaced.
	ErrMissingField = errors.New("missing field")

	// Summarization errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// Error constructors with context
func NewUnsupportedVariantError(tag string) error {
	return fmt.Errorf("%w: no handler registered for tag %q", ErrUnsupportedVariant, tag)
}

func NewInvalidTermError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidTerm, reason)
}

func NewDomainError(what string, value float64, valid string) error {
	return fmt.Errorf("%w: %s %g not in %s", ErrDomain, what, value, valid)
}

func NewMissingFieldError(field, term string) error {
	return fmt.Errorf("%w: %s for term %q", ErrMissingField, field, term)
}

func NewInsufficientDataError(need int, got int) error {
	return fmt.Errorf("%w: need at least %d observations, got %d", ErrInsufficientData, need, got)
}

// Error checking helpers
func IsUnsupportedVariantError(err error) bool {
	return errors.Is(err, ErrUnsupportedVariant)
}

func IsInvalidTermError(err error) bool {
	return errors.Is(err, ErrInvalidTerm)
}

func IsDomainError(err error) bool {
	return errors.Is(err, ErrDomain)
}

func IsMissingFieldError(err error) bool {
	return errors.Is(err, ErrMissingField)
}

func IsInsufficientDataError(err error) bool {
	return errors.Is(err, ErrInsufficientData)
}
