package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/traveltinder/backend/pkg/binder"
	"github.com/traveltinder/backend/pkg/validator"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Code    string       `json:"code,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type jsonResponse struct {
	status int
	body   Envelope
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON renders body with the given status.
func JSON(status int, body Envelope) Response {
	return jsonResponse{status: status, body: body}
}

// OK is a 200 success envelope. data may be nil.
func OK(message string, data any) Response {
	return JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created is a 201 success envelope.
func Created(message string, data any) Response {
	return JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Fail is an error envelope. See Classify for the status mapping.
func Fail(err error) Response {
	status, body := Classify(err)
	return JSON(status, body)
}

// Classify maps an error to a status and error envelope. Validation errors
// become 400 with per-field details, binding errors 400 or 413/415,
// HTTPError keeps its own status and anything else is an opaque 500.
func Classify(err error) (int, Envelope) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		body := Envelope{Message: ve.First(), Code: "validation_error"}
		if body.Message == "" {
			body.Message = "Validation error"
		}
		for _, e := range ve {
			body.Errors = append(body.Errors, FieldError{Field: e.Field, Message: e.Message})
		}
		return http.StatusBadRequest, body
	}

	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
	case errors.Is(err, binder.ErrBodyTooLarge):
		httpErr = ErrRequestTooLarge
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		httpErr = ErrUnsupportedMedia
	case errors.Is(err, binder.ErrFailedToParseJSON):
		httpErr = NewHTTPError(http.StatusBadRequest, "invalid_json", "Invalid JSON body")
	default:
		httpErr = ErrInternalServerError
	}

	msg := httpErr.Message
	if msg == "" {
		msg = http.StatusText(httpErr.Code)
	}
	return httpErr.Code, Envelope{Message: msg, Code: httpErr.Key}
}

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error defers err to the ErrorHandler configured on Wrap, which maps,
// logs and renders it. Prefer it over Fail inside handlers.
func Error(err error) Response {
	return errorResponse{err: err}
}
