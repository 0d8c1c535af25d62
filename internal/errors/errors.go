package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user lookup matches no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrBuildNotFound is returned when a build lookup matches no row.
	ErrBuildNotFound = errors.New("build not found")
	// ErrDuplicateUser is returned when a username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already exists")
	// ErrInvalidCredentials is returned when password verification fails.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrOwnerNotFound is returned when a build's owner cannot be resolved.
	ErrOwnerNotFound = errors.New("build owner not found")
	// ErrNotBuildOwner is returned when a user mutates a build they do not own.
	ErrNotBuildOwner = errors.New("build belongs to another user")
)

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

// MapErrorToHTTP maps domain errors to HTTP errors. Store failures that
// are not part of the taxonomy collapse to a generic 500; the detail is
// logged server-side, never echoed to the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrBuildNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BUILD_NOT_FOUND")
	case errors.Is(err, ErrDuplicateUser):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_USER")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrOwnerNotFound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "OWNER_NOT_FOUND")
	case errors.Is(err, ErrNotBuildOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_BUILD_OWNER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
