package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized is returned when a credential is missing, invalid or expired.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned on uniqueness violations.
	ErrConflict = errors.New("conflict")
)

// ValidationError carries a user-correctable message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// DomainError attaches a client-facing message to one of the sentinel errors.
type DomainError struct {
	Kind    error
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Kind
}

// Wrap returns an error that matches kind but reports message.
func Wrap(kind error, message string) error {
	return &DomainError{Kind: kind, Message: message}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unclassified
// becomes a generic 500 so driver details never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Message, "VALIDATION_ERROR")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, messageOr(err, ErrUnauthorized), "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, messageOr(err, ErrForbidden), "FORBIDDEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, messageOr(err, ErrNotFound), "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, messageOr(err, ErrConflict), "CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// messageOr returns the DomainError message when present, else the sentinel text.
func messageOr(err, sentinel error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return sentinel.Error()
}

// EchoError converts err into an echo HTTP error carrying an ErrorResponse
// body. The original error is kept as the internal cause for logging only.
func EchoError(err error) *echo.HTTPError {
	httpErr := MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse()).SetInternal(err)
}
