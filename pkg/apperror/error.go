package apperror

import (
	"errors"
	"net/http"
)

// Kind is the stable error classification exposed to callers. The HTTP code
// is transport mapping only; callers branch on Kind.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindForbidden  Kind = "FORBIDDEN"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindExpired    Kind = "EXPIRED"
	KindInternal   Kind = "INTERNAL"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, code int, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return New(KindValidation, http.StatusBadRequest, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(KindConflict, http.StatusConflict, message, nil)
}

func Expired(message string) *AppError {
	return New(KindExpired, http.StatusGone, message, nil)
}

func Internal(err error) *AppError {
	return New(KindInternal, http.StatusInternalServerError, "Internal Server Error", err)
}

// KindOf extracts the Kind from any error; non-AppErrors are INTERNAL.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
