package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user id, email, username or Google id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound is returned when a post id does not resolve.
	ErrPostNotFound = errors.New("post not found")
	// ErrDraftNotFound is returned when a draft id does not resolve.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrUserConflict is returned when a unique user field collides with an existing record.
	ErrUserConflict = errors.New("user already exists")
	// ErrUnauthorized is returned for missing, invalid, expired or revoked credentials.
	ErrUnauthorized = errors.New("could not validate credentials")
	// ErrForbidden is returned when the caller does not own the resource.
	ErrForbidden = errors.New("not the owner of this resource")
	// ErrInvalidImage is returned by image validation.
	ErrInvalidImage = errors.New("invalid image format or size")
	// ErrGenerationFailed is returned when the outfit generator fails.
	ErrGenerationFailed = errors.New("ai generation failed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Detail: e.Message}
}

// IsInternal reports whether the error maps to a 5xx response.
func (e *HTTPError) IsInternal() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are matched
// with errors.Is; anything unknown becomes a generic 500.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, ErrPostNotFound):
		return NewHTTPError(http.StatusNotFound, "Post not found")
	case errors.Is(err, ErrDraftNotFound):
		return NewHTTPError(http.StatusNotFound, "Draft not found")
	case errors.Is(err, ErrUserConflict):
		return NewHTTPError(http.StatusConflict, "User with this email, username or Google account already exists")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, "Could not validate credentials")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, "Not allowed to modify this resource")
	case errors.Is(err, ErrInvalidImage):
		return NewHTTPError(http.StatusBadRequest, "Invalid image format or size")
	case errors.Is(err, ErrGenerationFailed):
		return NewHTTPError(http.StatusInternalServerError, "AI generation failed")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
