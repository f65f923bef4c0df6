package docsauth

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/buildwithgo/openapi"
)

// BasicAuthConfig holds the configuration for Basic Auth middleware.
type BasicAuthConfig struct {
	// Validator is the function to validate username and password.
	Validator func(username, password string, r *http.Request) (bool, error)

	// Realm is the authentication realm. Default is "Restricted".
	Realm string

	// Skipper defines a function to skip middleware.
	Skipper func(r *http.Request) bool
}

// BasicAuthValidator defines the function signature for validating credentials.
type BasicAuthValidator func(username, password string, r *http.Request) (bool, error)

// DefaultBasicAuthConfig returns a default configuration.
func DefaultBasicAuthConfig() BasicAuthConfig {
	return BasicAuthConfig{
		Realm:   "Restricted",
		Skipper: func(r *http.Request) bool { return false },
	}
}

// BasicAuth returns a Basic Auth middleware.
func BasicAuth(validator BasicAuthValidator) Middleware {
	config := DefaultBasicAuthConfig()
	config.Validator = validator
	return BasicAuthWithConfig(config)
}

// BasicAuthWithConfig returns a Basic Auth middleware with custom configuration.
func BasicAuthWithConfig(config BasicAuthConfig) Middleware {
	if config.Validator == nil {
		panic("BasicAuth: validator function is required")
	}
	if config.Skipper == nil {
		config.Skipper = DefaultBasicAuthConfig().Skipper
	}
	if config.Realm == "" {
		config.Realm = "Restricted"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Skipper(r) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				w.Header().Set("WWW-Authenticate", `Basic realm="`+config.Realm+`"`)
				openapi.WriteError(w, openapi.NewHTTPError(http.StatusUnauthorized, "Unauthorized"))
				return
			}

			const prefix = "Basic "
			if !strings.HasPrefix(auth, prefix) {
				openapi.WriteError(w, openapi.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header"))
				return
			}

			decoded, err := base64.StdEncoding.DecodeString(auth[len(prefix):])
			if err != nil {
				openapi.WriteError(w, openapi.NewHTTPError(http.StatusUnauthorized, "Invalid base64"))
				return
			}

			creds := strings.SplitN(string(decoded), ":", 2)
			if len(creds) != 2 {
				openapi.WriteError(w, openapi.NewHTTPError(http.StatusUnauthorized, "Invalid credentials format"))
				return
			}

			valid, err := config.Validator(creds[0], creds[1], r)
			if err != nil {
				openapi.WriteError(w, err)
				return
			}
			if !valid {
				w.Header().Set("WWW-Authenticate", `Basic realm="`+config.Realm+`"`)
				openapi.WriteError(w, openapi.NewHTTPError(http.StatusUnauthorized, "Unauthorized"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
