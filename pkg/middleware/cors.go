package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORS returns middleware that applies CORS headers based on the config.
// Passes through without headers when disabled or no origins are configured.
func CORS(cfg *CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled || len(cfg.Origins) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			if origin := r.Header.Get("Origin"); slices.Contains(cfg.Origins, origin) {
				setCORSHeaders(w.Header(), cfg, origin)
			}

			// Preflight requests are answered here and never reach handlers.
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func setCORSHeaders(h http.Header, cfg *CORSConfig, origin string) {
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
	h.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ", "))

	if cfg.AllowCredentials {
		h.Set("Access-Control-Allow-Credentials", "true")
	}

	if cfg.MaxAge > 0 {
		h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
	}
}
