// Package apperr defines the recoverable error kinds surfaced by the
// domain services. Anything outside this taxonomy is an infrastructure
// failure and passes through opaque.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidReference
	KindInvalidTransition
	KindBusinessRule
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string

	// Entity and ID are set for NotFound and InvalidTransition.
	Entity string
	ID     int64

	// Field names the offending payload field for InvalidReference.
	Field string

	// State is the actual current state for InvalidTransition.
	State string

	// Used and Cap carry the entitlement numbers for BusinessRule.
	Used int
	Cap  int
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(entity string, id int64) *Error {
	return &Error{
		Kind:    KindNotFound,
		Entity:  entity,
		ID:      id,
		Message: fmt.Sprintf("%s %d not found", entity, id),
	}
}

func InvalidReference(field string, id int64) *Error {
	return &Error{
		Kind:    KindInvalidReference,
		Field:   field,
		ID:      id,
		Message: fmt.Sprintf("%s %d does not exist", field, id),
	}
}

func InvalidTransition(entity string, id int64, state string) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Entity:  entity,
		ID:      id,
		State:   state,
		Message: fmt.Sprintf("%s %d is %s and cannot be transitioned", entity, id, state),
	}
}

func LimitExceeded(used, cap int) *Error {
	return &Error{
		Kind:    KindBusinessRule,
		Used:    used,
		Cap:     cap,
		Message: fmt.Sprintf("annual leave limit exceeded, used %d/%d days", used, cap),
	}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf reports the taxonomy kind of err, or KindUnknown for
// infrastructure errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// As unwraps err into *Error when it belongs to the taxonomy.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
