// Package routes declares HTTP endpoints as nested groups so each domain
// handler can describe its surface as data and register it in one call.
package routes

import "net/http"

// Group collects routes under a shared prefix. Children inherit the full
// prefix of their parent.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route in the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		register(mux, "", g)
	}
}

func register(mux *http.ServeMux, parent string, g Group) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		mux.HandleFunc(r.Method+" "+prefix+r.Pattern, r.Handler)
	}
	for _, child := range g.Children {
		register(mux, prefix, child)
	}
}
