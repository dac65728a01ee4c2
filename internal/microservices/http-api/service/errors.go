package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrConflict                = errors.New("conflicting update, retry the request")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	ErrDuplicateReview         = errors.New("only one review per title is allowed")
	ErrInvalidToken            = errors.New("invalid or expired token")
)

// NonFieldErrors is the key for errors that concern the payload as a whole.
const NonFieldErrors = "non_field_errors"

// ValidationError collects messages per request field. It unwraps to the
// sentinel that caused it, if any.
type ValidationError struct {
	Fields map[string][]string
	cause  error
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// Add appends msg to field.
func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// Merge copies every message of other into e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		for _, msg := range msgs {
			e.Add(field, msg)
		}
	}
}

// OrNil returns nil when nothing was collected.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// fieldError builds a single-field validation error caused by sentinel.
func fieldError(field string, sentinel error) *ValidationError {
	e := &ValidationError{cause: sentinel}
	e.Add(field, sentinel.Error())
	return e
}
