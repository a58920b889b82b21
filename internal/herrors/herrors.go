// Package herrors defines the error kinds surfaced at the HTTP boundary
// (spec §7) and a small wrapper that carries one through from storage and
// the domain layer.
package herrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is one of the recognized error kinds in spec §7's table.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidRating
	KindInvalidPriority
	KindInvalidReviewFunction
	// KindInvalidItemType covers the card materializer's "other" branch
	// (spec §4.4): an ItemType name the materializer doesn't recognize.
	// Not in spec §7's table verbatim, but falls under its closing
	// sentence ("validation failures are recognized by the handler
	// layer... review-function name") extended to item-type name.
	KindInvalidItemType
	KindMethodNotAllowed
	KindDatabase
)

// Status returns the HTTP status code for a Kind.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidRating, KindInvalidPriority, KindInvalidReviewFunction, KindInvalidItemType:
		return http.StatusBadRequest
	case KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case KindDatabase:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error tagged with a Kind.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// New constructs an Error of the given kind with a message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

// Newf constructs an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap wraps err as an Error of the given kind, preserving it for errors.Is/As.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, msg: msg, err: err}
}

// NotFound builds a KindNotFound error.
func NotFound(msg string) *Error { return New(KindNotFound, msg) }

// Database wraps an unrecoverable storage error as KindDatabase.
func Database(op string, err error) *Error {
	return Wrap(KindDatabase, fmt.Sprintf("database error during %s", op), err)
}

// As is a convenience wrapper over errors.As for *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err if it is (or wraps) an *Error, else
// KindDatabase — any error that reaches the HTTP boundary unclassified is
// treated as an unrecoverable storage failure per spec §7.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindDatabase
}
