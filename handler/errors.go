package handler

import (
	"errors"
	"net/http"
)

// ErrNilResponse indicates a handler returned nil instead of a Response.
var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError is an error with a status code, a stable machine-readable key
// and the human message shown to clients.
type HTTPError struct {
	Code    int
	Key     string
	Message string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Key
}

// NewHTTPError creates an HTTPError.
//
//	var ErrOTPNotFound = handler.NewHTTPError(http.StatusBadRequest, "otp_not_found", "OTP not found or expired")
func NewHTTPError(code int, key, message string) HTTPError {
	return HTTPError{Code: code, Key: key, Message: message}
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "bad_request", Message: "Bad request"}
	ErrUnauthorized        = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized", Message: "Unauthorized"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "not_found", Message: "Not found"}
	ErrMethodNotAllowed    = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed", Message: "Method not allowed"}
	ErrRequestTooLarge     = HTTPError{Code: http.StatusRequestEntityTooLarge, Key: "request_entity_too_large", Message: "Request body too large"}
	ErrUnsupportedMedia    = HTTPError{Code: http.StatusUnsupportedMediaType, Key: "unsupported_media_type", Message: "Content-Type must be application/json"}
	ErrTooManyRequests     = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests", Message: "Too many requests, please try again later"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_error", Message: "Internal server error"}
)
