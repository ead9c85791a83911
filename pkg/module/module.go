// Package module mounts independent HTTP surfaces (the audit API, health
// endpoints) under single-level path prefixes, each with its own middleware
// stack.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/mbaumgart/perdiem/pkg/middleware"
)

// Module strips its prefix from incoming requests and delegates to an inner
// router wrapped in the module's middleware.
type Module struct {
	prefix string
	inner  http.Handler
	stack  middleware.System
}

// New creates a Module for a single-level prefix such as "/api". Panics on
// an empty, unrooted, or multi-level prefix; prefixes are wiring constants,
// not runtime input.
func New(prefix string, inner http.Handler) *Module {
	if err := checkPrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix: prefix,
		inner:  inner,
		stack:  middleware.New(),
	}
}

// Handler returns the inner router wrapped with the module's middleware.
func (m *Module) Handler() http.Handler {
	return m.stack.Apply(m.inner)
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve strips the module prefix from the request path and dispatches to
// the inner router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	stripped := rebase(req, trimPrefix(req.URL.Path, m.prefix))
	m.Handler().ServeHTTP(w, stripped)
}

// Use appends middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.stack.Use(mw)
}

func rebase(req *http.Request, path string) *http.Request {
	clone := new(http.Request)
	*clone = *req
	clone.URL = new(url.URL)
	*clone.URL = *req.URL
	clone.URL.Path = path
	clone.URL.RawPath = ""
	return clone
}

func trimPrefix(fullPath, prefix string) string {
	path := fullPath[len(prefix):]
	if path == "" {
		return "/"
	}
	return path
}

func checkPrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 {
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	return nil
}
