package orders

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidItem indicates an order item would violate a model invariant.
	ErrInvalidItem = errors.New("orders: invalid order item")
	// ErrInvalidOrder indicates an order would violate a model invariant.
	ErrInvalidOrder = errors.New("orders: invalid order")
	// ErrMalformedPayload indicates a raw payload is missing a required
	// field or a field has an unparsable shape.
	ErrMalformedPayload = errors.New("orders: malformed payload")
)

// MalformedPayloadError describes which required field of a raw payload
// was missing or could not be parsed. It wraps ErrMalformedPayload so
// callers can match the whole class with errors.Is.
type MalformedPayloadError struct {
	// Platform is the importer that rejected the payload
	Platform string
	// Field is the payload field that was missing or ill-shaped
	Field string
	// Reason describes what was wrong with the field
	Reason string
}

// Error implements the error interface
func (e *MalformedPayloadError) Error() string {
	if e.Platform != "" {
		return fmt.Sprintf("%s payload: field %q: %s", e.Platform, e.Field, e.Reason)
	}
	return fmt.Sprintf("payload: field %q: %s", e.Field, e.Reason)
}

// Unwrap makes the error match ErrMalformedPayload via errors.Is
func (e *MalformedPayloadError) Unwrap() error {
	return ErrMalformedPayload
}

// NewMalformedPayloadError creates a MalformedPayloadError
func NewMalformedPayloadError(platform, field, reason string) *MalformedPayloadError {
	return &MalformedPayloadError{Platform: platform, Field: field, Reason: reason}
}
