// Package errx maps internal failures to an HTTP status and a message that is safe to show.
package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const SystemErrorMessage = "Something went wrong. Please try again."

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

func New(err error, status int, message string) *AppError {
	return &AppError{Err: err, Status: status, Message: message}
}

func BadRequest(message string) *AppError { return New(nil, http.StatusBadRequest, message) }

func NotFound(err error, message string) *AppError { return New(err, http.StatusNotFound, message) }

// Internal hides err behind the generic message.
func Internal(err error) *AppError {
	return New(err, http.StatusInternalServerError, SystemErrorMessage)
}

// From returns err as an AppError, defaulting to Internal.
func From(err error) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
