package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is an operational error that is safe to surface to the caller.
type APIError struct {
	Name        string `json:"name"`
	Code        int    `json:"code"`
	Description string `json:"description"`
	Err         error  `json:"-"`
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Description, e.Err)
	}
	return e.Description
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// New creates a new APIError.
func New(name string, code int, description string) *APIError {
	return &APIError{
		Name:        name,
		Code:        code,
		Description: description,
	}
}

func BadRequest(name, description string) *APIError {
	return New(name, http.StatusBadRequest, description)
}

func Unauthorized(description string) *APIError {
	return New("Unauthorized", http.StatusUnauthorized, description)
}

func NotFound(description string) *APIError {
	return New("Not Found", http.StatusNotFound, description)
}

func Internal(description string) *APIError {
	return New("Internal Server Error", http.StatusInternalServerError, description)
}

// IsOperational reports whether err carries an APIError anywhere in its chain.
func IsOperational(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
