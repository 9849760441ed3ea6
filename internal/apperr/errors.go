// Package apperr defines the structured error kinds returned by the ledger
// and services so callers can branch on kind instead of parsing messages.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	InvalidInput               Kind = "INVALID_INPUT"
	InvalidTransition          Kind = "INVALID_TRANSITION"
	UnauthorizedActor          Kind = "UNAUTHORIZED_ACTOR"
	ProductNotAvailableForSale Kind = "PRODUCT_NOT_AVAILABLE_FOR_SALE"
	ConflictRetry              Kind = "CONFLICT_RETRY"
	NotFound                   Kind = "NOT_FOUND"
)

type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the status code handlers should respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case InvalidInput:
		return http.StatusBadRequest
	case InvalidTransition, ProductNotAvailableForSale:
		return http.StatusUnprocessableEntity
	case UnauthorizedActor:
		return http.StatusForbidden
	case ConflictRetry:
		return http.StatusConflict
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
