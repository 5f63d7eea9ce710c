// Package httpx carries the HTTP plumbing shared by all handlers:
// middleware chaining, bearer authentication, role enforcement, rate
// limiting and JSON responses.
package httpx

import "net/http"

// Middleware wraps a handler with extra behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h so that the first listed middleware is the
// outermost, i.e. runs first. Chain(h, authn, authz) authenticates before
// authorizing.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
