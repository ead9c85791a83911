// Package middleware provides the HTTP middleware stack for the API server:
// request logging, CORS, and bearer-token authentication.
package middleware

import "net/http"

// System manages an ordered stack of HTTP middleware.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type chain struct {
	fns []func(http.Handler) http.Handler
}

// New creates an empty middleware System.
func New() System {
	return &chain{}
}

func (c *chain) Use(fn func(http.Handler) http.Handler) {
	c.fns = append(c.fns, fn)
}

// Apply wraps handler so the first registered middleware is outermost.
func (c *chain) Apply(handler http.Handler) http.Handler {
	for i := len(c.fns) - 1; i >= 0; i-- {
		handler = c.fns[i](handler)
	}
	return handler
}
