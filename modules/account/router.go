package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the account module.
// Each service is optional and will only be mounted if provided.
type RouterOptions struct {
	Auth Mountable
}

// Router creates the account module router.
//
// Example:
//
//	authSvc := account.NewAuthService(sessions, tokens, errorHandler)
//
//	r := chi.NewRouter()
//	r.Mount("/", account.Router(account.RouterOptions{Auth: authSvc}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.Auth != nil {
		r.Mount("/auth", opts.Auth.Handle())
	}

	return r
}
