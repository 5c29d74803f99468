// Package errs defines the typed error taxonomy shared by all services.
// Handlers translate these into HTTP responses; services never write
// user-facing messages themselves.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is implemented by every domain error so handlers can map it
// to an HTTP status and a stable category string.
type AppError interface {
	error
	Category() string
	HTTPStatus() int
}

// ValidationError: bad input shape or range (serial bounds, empty
// selections, same-warehouse transfers, ...).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return e.Msg }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }

func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError: a referenced unit or journal record id no longer resolves.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return e.Msg }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }

func NewNotFound(format string, args ...interface{}) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a rejected store call.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string    { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *PersistenceError) Category() string { return "PERSISTENCE_ERROR" }
func (e *PersistenceError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *PersistenceError) Unwrap() error    { return e.Err }

func NewPersistence(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

// PartialFailure: a multi-step operation committed an earlier step and
// failed in a later one. The committed steps are NOT rolled back; the
// error reports how far the operation got.
type PartialFailure struct {
	Op    string
	Done  int
	Total int
	Err   error
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("%s: completed %d of %d steps: %v", e.Op, e.Done, e.Total, e.Err)
}
func (e *PartialFailure) Category() string { return "PARTIAL_FAILURE" }
func (e *PartialFailure) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *PartialFailure) Unwrap() error    { return e.Err }

// HTTPStatus maps any error to a status + category for the handler layer.
func HTTPStatus(err error) (int, string) {
	var app AppError
	if errors.As(err, &app) {
		return app.HTTPStatus(), app.Category()
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
