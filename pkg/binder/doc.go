// Package binder decodes HTTP request bodies into typed request structs.
//
// The API accepts JSON only. JSON returns a binder for use with
// handler.WithBinder:
//
//	type LoginRequest struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinder[handler.Context, LoginRequest](binder.JSON()),
//	))
//
// # Error Handling
//
// Binding failures wrap one of ErrFailedToParseJSON, ErrUnsupportedMediaType
// or ErrBodyTooLarge, so callers can map them with errors.Is.
package binder
