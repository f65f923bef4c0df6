package docsauth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/buildwithgo/openapi"
)

// KeyAuthConfig holds the configuration for Key Auth middleware.
type KeyAuthConfig struct {
	// KeyLookup is a string in the form of "header:Key-Name", "query:Key-Name", or "cookie:Key-Name".
	// Default is "header:X-API-Key".
	KeyLookup string

	// AuthScheme is the authentication scheme (e.g., "Bearer").
	// Only used if KeyLookup is "header". Default is "".
	AuthScheme string

	// Validator is the function to validate the key.
	Validator func(key string, r *http.Request) (bool, error)

	// ErrorHandler is called when an error occurs during key validation.
	ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

	// Skipper defines a function to skip middleware.
	Skipper func(r *http.Request) bool
}

// DefaultKeyAuthConfig returns a default configuration.
func DefaultKeyAuthConfig() KeyAuthConfig {
	return KeyAuthConfig{
		KeyLookup: "header:X-API-Key",
		Skipper:   func(r *http.Request) bool { return false },
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			openapi.WriteError(w, openapi.NewHTTPError(http.StatusUnauthorized, err.Error()))
		},
	}
}

// KeyAuth returns a Key Auth middleware.
func KeyAuth(validator func(key string, r *http.Request) (bool, error)) Middleware {
	config := DefaultKeyAuthConfig()
	config.Validator = validator
	return KeyAuthWithConfig(config)
}

// KeyAuthWithConfig returns a Key Auth middleware with custom configuration.
func KeyAuthWithConfig(config KeyAuthConfig) Middleware {
	if config.Validator == nil {
		panic("KeyAuth: validator function is required")
	}
	if config.Skipper == nil {
		config.Skipper = DefaultKeyAuthConfig().Skipper
	}
	if config.ErrorHandler == nil {
		config.ErrorHandler = DefaultKeyAuthConfig().ErrorHandler
	}

	parts := strings.Split(config.KeyLookup, ":")
	extractor := func(r *http.Request) (string, error) {
		return "", errors.New("invalid key lookup configuration")
	}

	if len(parts) == 2 {
		switch parts[0] {
		case "header":
			extractor = func(r *http.Request) (string, error) {
				key := r.Header.Get(parts[1])
				if key == "" {
					return "", errors.New("missing key in header")
				}
				if config.AuthScheme != "" {
					if !strings.HasPrefix(key, config.AuthScheme+" ") {
						return "", errors.New("invalid key scheme")
					}
					return key[len(config.AuthScheme)+1:], nil
				}
				return key, nil
			}
		case "query":
			extractor = func(r *http.Request) (string, error) {
				key := r.URL.Query().Get(parts[1])
				if key == "" {
					return "", errors.New("missing key in query")
				}
				return key, nil
			}
		case "cookie":
			extractor = func(r *http.Request) (string, error) {
				cookie, err := r.Cookie(parts[1])
				if err != nil {
					return "", errors.New("missing key in cookie")
				}
				return cookie.Value, nil
			}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Skipper(r) {
				next.ServeHTTP(w, r)
				return
			}

			key, err := extractor(r)
			if err != nil {
				config.ErrorHandler(w, r, err)
				return
			}

			valid, err := config.Validator(key, r)
			if err != nil {
				config.ErrorHandler(w, r, err)
				return
			}
			if !valid {
				config.ErrorHandler(w, r, errors.New("invalid key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
