package chain

import (
	"errors"
	"strconv"
)

var (
	// ErrSelfUnbound is the panic value when an abstract builder is used
	// before a concrete builder bound itself.
	ErrSelfUnbound = errors.New("chain: builder used before Bind")

	// ErrSelfRebound is the panic value when a second concrete builder in the
	// same chain tries to bind itself.
	ErrSelfRebound = errors.New("chain: self already bound")

	// ErrConsumed classifies builds rejected by the SingleUse policy.
	ErrConsumed = errors.New("chain: builder already consumed")

	// ErrMissingField classifies builds rejected by WithRequired.
	ErrMissingField = errors.New("chain: required field not set")

	// ErrRegistryPanic is returned if a registry implementation panics internally.
	ErrRegistryPanic = errors.New("chain: panic during Resolve")
)

// MissingFieldError identifies the first required field that was not set
// when a build was attempted.
type MissingFieldError struct {
	Kind  Kind
	Field Field
}

// Error implements the error interface.
func (e MissingFieldError) Error() string {
	// Example: chain: sealed: required field "prop1" not set
	return "chain: " + string(e.Kind) + ": required field " + strconv.Quote(string(e.Field)) + " not set"
}

// Unwrap lets errors.Is match ErrMissingField.
func (e MissingFieldError) Unwrap() error { return ErrMissingField }

// ConsumedError reports a build on a SingleUse builder that already built.
type ConsumedError struct {
	Kind   Kind
	Builds int
}

// Error implements the error interface.
func (e ConsumedError) Error() string {
	// Example: chain: root: builder already consumed (1 builds)
	return "chain: " + string(e.Kind) + ": builder already consumed (" + strconv.Itoa(e.Builds) + " builds)"
}

// Unwrap lets errors.Is match ErrConsumed.
func (e ConsumedError) Unwrap() error { return ErrConsumed }
