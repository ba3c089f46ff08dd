package errors

import (
	"errors"
	"net/http"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Constructors for the error classes the services produce. Handlers map
// anything else to 500.

// Validation: bad input shape, user-correctable.
func Validation(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest}
}

// Conflict: duplicate username.
func Conflict(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict}
}

// Auth: bad credentials. Always the same generic message so callers cannot
// tell a missing user from a wrong password.
func Auth() *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: "Invalid credentials", StatusCode: http.StatusUnauthorized}
}

// Capacity: session limit reached, retryable later.
func Capacity(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusTooManyRequests}
}

// Persistence: durable storage failed. Fatal to the request, never retried.
func Persistence(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusInternalServerError}
}

// Gateway: downstream prediction call failed.
func Gateway(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadGateway}
}

func NotFound(msg string) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound}
}

func statusCode(err error) int {
	var e *ErrorWithStatusCode
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return http.StatusInternalServerError
}

func IsNotFound(err error) bool { return statusCode(err) == http.StatusNotFound }

func IsConflict(err error) bool { return statusCode(err) == http.StatusConflict }

func IsCapacity(err error) bool { return statusCode(err) == http.StatusTooManyRequests }
