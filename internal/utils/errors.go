package utils

import "net/http"

// AppError is an error with an associated HTTP status code.
// Handlers map it to a response; anything else becomes a 500.
type AppError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequestError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: message}
}

func NewInternalError(message string) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Message: message}
}

// NewServiceUnavailableError reports an unreachable upstream dependency.
func NewServiceUnavailableError(message, details string) *AppError {
	return &AppError{StatusCode: http.StatusServiceUnavailable, Message: message, Details: details}
}

// NewBadGatewayError reports a failed or malformed upstream response.
func NewBadGatewayError(message string) *AppError {
	return &AppError{StatusCode: http.StatusBadGateway, Message: message}
}
