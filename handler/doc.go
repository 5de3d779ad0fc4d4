// Package handler provides typed JSON request handling for the API.
//
// Handlers are generic functions that receive a bound request struct and
// return a Response. Wrap adapts them to http.HandlerFunc, running the
// configured binders first:
//
//	type RefreshRequest struct {
//		RefreshToken string `json:"refreshToken"`
//	}
//
//	func refresh(ctx handler.Context, req RefreshRequest) handler.Response {
//		token, err := sessions.Refresh(ctx, req.RefreshToken)
//		if err != nil {
//			return handler.Error(err)
//		}
//		return handler.OK("Token refreshed successfully", map[string]string{"accessToken": token})
//	}
//
//	r.Post("/refresh", handler.Wrap(refresh,
//		handler.WithBinder[handler.Context, RefreshRequest](binder.JSON()),
//	))
//
// # Response Envelope
//
// Every response body is an Envelope:
//
//	{"success": true, "message": "Login successful", "data": {...}}
//	{"success": false, "message": "Invalid credentials", "code": "invalid_credentials"}
//
// Classify maps errors to a status and envelope. Domain packages stay free
// of HTTP concerns; an ErrorMapper passed to NewErrorHandler converts their
// sentinel errors into HTTPError values first.
package handler
