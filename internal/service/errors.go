package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so controllers can pick a status code
// without inspecting message text.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindNotFound: a referenced participant, session, test or progress
	// record does not exist.
	KindNotFound
	// KindValidation: a supplied value is out of range; the record was left
	// unmodified.
	KindValidation
	// KindConflict: the operation is not allowed in the record's current
	// state, e.g. completing an already-terminal attempt.
	KindConflict
	// KindPrecondition: the participant or test is not part of the session.
	KindPrecondition
	// KindUnavailable: the store failed; callers may retry with backoff.
	KindUnavailable
)

// DomainError carries the kind and, for validation errors, the offending
// field alongside the message.
type DomainError struct {
	Kind    ErrorKind
	Field   string
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.cause }

func notFoundError(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func validationError(field, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindValidation, Field: field, Message: fmt.Sprintf(format, args...)}
}

func conflictError(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func preconditionError(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindPrecondition, Message: fmt.Sprintf(format, args...)}
}

func storageError(err error) *DomainError {
	return &DomainError{Kind: KindUnavailable, Message: "storage unavailable", cause: err}
}

// KindOf extracts the kind from err, or KindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
