package services

import (
	"errors"
	"fmt"
)

// ErrNoResults signals that a filtered query matched zero rows. It is
// distinct from a lookup of a missing identifier but surfaces to the
// caller the same way (404 with a message).
var ErrNoResults = errors.New("no matching records")

// NotFoundError reports a lookup of an identifier with no matching row
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// NewNotFound creates a NotFoundError for the named resource
func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// ReferenceError reports a write whose foreign key does not resolve to
// an existing row of the referenced type
type ReferenceError struct {
	Resource string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("referenced %s not found", e.Resource)
}

// NewReferenceError creates a ReferenceError for the named resource
func NewReferenceError(resource string) *ReferenceError {
	return &ReferenceError{Resource: resource}
}

// IDMismatchError reports a replace whose path identifier differs from
// the identifier embedded in the payload
type IDMismatchError struct {
	Resource string
}

func (e *IDMismatchError) Error() string {
	return fmt.Sprintf("%s ID does not match the request path", e.Resource)
}

// NewIDMismatch creates an IDMismatchError for the named resource
func NewIDMismatch(resource string) *IDMismatchError {
	return &IDMismatchError{Resource: resource}
}
