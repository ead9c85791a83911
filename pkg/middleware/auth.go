package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
)

// AuthConfig holds OIDC bearer token verification settings.
// When disabled, the auth middleware passes all requests through.
type AuthConfig struct {
	Enabled  bool   `toml:"enabled"`
	Issuer   string `toml:"issuer"`
	Audience string `toml:"audience"`
}

// AuthEnv maps auth config fields to environment variable names for override injection.
type AuthEnv struct {
	Enabled  string
	Issuer   string
	Audience string
}

// Finalize applies environment variable overrides and validation.
func (c *AuthConfig) Finalize(env *AuthEnv) error {
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields from overlay. Enabled always applies.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	c.Enabled = overlay.Enabled
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Audience != "" {
		c.Audience = overlay.Audience
	}
}

func (c *AuthConfig) loadEnv(env *AuthEnv) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
	}
	if env.Issuer != "" {
		if v := os.Getenv(env.Issuer); v != "" {
			c.Issuer = v
		}
	}
	if env.Audience != "" {
		if v := os.Getenv(env.Audience); v != "" {
			c.Audience = v
		}
	}
}

func (c *AuthConfig) validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Issuer == "" {
		return fmt.Errorf("issuer required when auth is enabled")
	}
	if c.Audience == "" {
		return fmt.Errorf("audience required when auth is enabled")
	}
	return nil
}

type tokenVerifier struct {
	cfg *AuthConfig
	mu  sync.Mutex
	v   *oidc.IDTokenVerifier
}

// The provider discovery round trip is deferred to the first request so
// server startup does not depend on identity provider availability. Only a
// successful discovery is cached; a failure is retried on the next request.
func (t *tokenVerifier) verifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.v == nil {
		provider, err := oidc.NewProvider(ctx, t.cfg.Issuer)
		if err != nil {
			return nil, fmt.Errorf("discover oidc provider: %w", err)
		}
		t.v = provider.Verifier(&oidc.Config{ClientID: t.cfg.Audience})
	}

	return t.v, nil
}

// Auth returns middleware that verifies OIDC bearer tokens against the
// configured issuer and audience. Requests without a valid token receive 401.
// Pass-through when the config is disabled.
func Auth(cfg *AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	tv := &tokenVerifier{cfg: cfg}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}

			verifier, err := tv.verifier(r.Context())
			if err != nil {
				logger.Error("oidc verifier unavailable", "error", err)
				unauthorized(w, "token verification unavailable")
				return
			}

			if _, err := verifier.Verify(r.Context(), raw); err != nil {
				logger.Warn("token rejected", "error", err)
				unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}

	return token, true
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, "{%q:%q}", "error", msg)
}
