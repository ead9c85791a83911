package module

import (
	"net/http"
	"strings"
)

// Router dispatches requests to mounted modules by their first path segment,
// falling back to a plain ServeMux for everything else.
type Router struct {
	mounts   map[string]*Module
	fallback *http.ServeMux
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		mounts:   make(map[string]*Module),
		fallback: http.NewServeMux(),
	}
}

// HandleNative registers a handler on the fallback mux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.fallback.HandleFunc(pattern, handler)
}

// Mount registers a module under its prefix.
func (r *Router) Mount(m *Module) {
	r.mounts[m.prefix] = m
}

// ServeHTTP routes to the matching module or the fallback mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := stripTrailingSlash(req)

	if m, ok := r.mounts[firstSegment(path)]; ok {
		m.Serve(w, req)
		return
	}

	r.fallback.ServeHTTP(w, req)
}

func firstSegment(path string) string {
	parts := strings.SplitN(path, "/", 3)
	if len(parts) >= 2 {
		return "/" + parts[1]
	}
	return path
}

func stripTrailingSlash(req *http.Request) string {
	path := req.URL.Path
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
		req.URL.Path = path
	}
	return path
}
