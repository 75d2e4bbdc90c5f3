package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrDuplicateEmail     = errors.New("duplicate email")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrForbidden          = errors.New("forbidden")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidURL         = errors.New("invalid url")
	ErrNotFound           = errors.New("not found")
	ErrMetadataFetch      = errors.New("metadata fetch failed")
	ErrPersistence        = errors.New("persistence error")
)

// AppError carries a kind (one of the sentinels above) and the message that
// is returned to the API caller.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind error, message string) *AppError {
	return &AppError{Err: kind, Message: message}
}

func DuplicateEmail() *AppError {
	return New(ErrDuplicateEmail, "Email already registered")
}

func InvalidCredentials() *AppError {
	return New(ErrInvalidCredentials, "Invalid email or password")
}

func Forbidden(message string) *AppError {
	return New(ErrForbidden, message)
}

func AccountNotFound(role string) *AppError {
	if role == "doctor" {
		return New(ErrAccountNotFound, "Doctor not found")
	}
	return New(ErrAccountNotFound, "User not found")
}

func InvalidArgument(message string) *AppError {
	return New(ErrInvalidArgument, message)
}

func NotFound(message string) *AppError {
	return New(ErrNotFound, message)
}

// Persistence wraps a driver error. The driver message is kept in Message so
// it reaches the caller.
func Persistence(op string, err error) *AppError {
	return &AppError{Err: errors.Join(ErrPersistence, err), Message: op + ": " + err.Error()}
}

// Status maps an error chain to the HTTP status it is reported with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, ErrTokenExpired), errors.Is(err, ErrTokenInvalid):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAccountNotFound), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing message for err. Errors that carry no
// AppError are reported generically.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
