package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	StoreErrorMessage  = "document store unavailable, please try again"
	CDNErrorMessage    = "image upload failed"
)

// Kind groups errors by how the caller is expected to react.
type Kind int

const (
	KindInternal Kind = iota
	// KindValidation is bad caller input; reported immediately, never retried.
	KindValidation
	// KindCollaborator is a failed store, CDN or lookup call.
	KindCollaborator
	// KindState means required session data is missing; the caller is sent back
	// to Redirect.
	KindState
)

// AppError wraps an underlying error with an HTTP status and a safe message.
type AppError struct {
	Err      error
	Kind     Kind
	Status   int
	Code     string
	Message  string
	Redirect string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Kind:    KindInternal,
		Status:  status,
		Code:    "internal_error",
		Message: message,
	}
}

// Validation builds a 400 error carrying a user-facing message.
func Validation(code, message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Code:    code,
		Message: message,
	}
}

// NotFound builds a 404 validation error.
func NotFound(code, message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Status:  http.StatusNotFound,
		Code:    code,
		Message: message,
	}
}

// Unauthorized builds a 401 or 403 error for identity failures.
func Unauthorized(status int, code, message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// State builds a 409 error that sends the caller back to redirect.
func State(code, message, redirect string) *AppError {
	return &AppError{
		Kind:     KindState,
		Status:   http.StatusConflict,
		Code:     code,
		Message:  message,
		Redirect: redirect,
	}
}

// Collaborator wraps a failure of an external dependency.
func Collaborator(err error, code, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Err:     err,
		Kind:    KindCollaborator,
		Status:  http.StatusBadGateway,
		Code:    code,
		Message: message,
	}
}

// WrapStore wraps a document store error with a consistent status code and message.
func WrapStore(err error) error {
	if err == nil {
		return nil
	}
	return Collaborator(err, "store_unavailable", StoreErrorMessage)
}

// WrapCDN wraps a media upload failure.
func WrapCDN(err error) error {
	if err == nil {
		return nil
	}
	return Collaborator(err, "upload_failed", CDNErrorMessage)
}

// Is reports whether the target matches the underlying error or the AppError itself.
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return t.Code != "" && t.Code == e.Code
	}
	return errors.Is(e.Err, target)
}

// As allows casting to AppError or the wrapped error in a chain.
func (e *AppError) As(target any) bool {
	if t, ok := target.(**AppError); ok {
		*t = e
		return true
	}
	if e.Err != nil && errors.As(e.Err, target) {
		return true
	}
	return false
}

// From extracts the AppError from err's chain, or wraps err as internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(err, http.StatusInternalServerError, SystemErrorMessage)
}
