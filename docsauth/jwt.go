package docsauth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTConfig holds the configuration for JWT middleware
type JWTConfig struct {
	// Secret key for HMAC signing
	Secret []byte

	// RSA public key for RSA signing verification
	PublicKey *rsa.PublicKey

	// Token lookup configuration
	TokenLookup string // "header:Authorization", "query:token", "cookie:jwt"

	// Auth scheme for header lookup
	AuthScheme string // "Bearer"

	// Error handler
	ErrorHandler func(http.ResponseWriter, *http.Request, error)

	// Success handler called after successful validation
	SuccessHandler func(*http.Request, *jwt.Token) error

	// Skipper function to skip middleware for certain requests
	Skipper func(*http.Request) bool

	// Signing method
	SigningMethod jwt.SigningMethod
}

// JWTOption is a function type for configuring JWT middleware
type JWTOption func(*JWTConfig)

// DefaultJWTConfig returns a default JWT configuration
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		TokenLookup:   "header:Authorization",
		AuthScheme:    "Bearer",
		SigningMethod: jwt.SigningMethodHS256,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"error":   "unauthorized",
				"message": err.Error(),
			})
		},
		Skipper: func(r *http.Request) bool {
			return false
		},
	}
}

// WithSecret sets the HMAC secret
func WithSecret(secret string) JWTOption {
	return func(config *JWTConfig) {
		config.Secret = []byte(secret)
		config.SigningMethod = jwt.SigningMethodHS256
	}
}

// WithSecretBytes sets the HMAC secret from bytes
func WithSecretBytes(secret []byte) JWTOption {
	return func(config *JWTConfig) {
		config.Secret = secret
		config.SigningMethod = jwt.SigningMethodHS256
	}
}

// WithRSAPublicKey sets the RSA public key for verification
func WithRSAPublicKey(publicKey *rsa.PublicKey) JWTOption {
	return func(config *JWTConfig) {
		config.PublicKey = publicKey
		config.SigningMethod = jwt.SigningMethodRS256
	}
}

// WithRSAPublicKeyFromPEM sets the RSA public key from PEM string
func WithRSAPublicKeyFromPEM(pemStr string) JWTOption {
	return func(config *JWTConfig) {
		block, _ := pem.Decode([]byte(pemStr))
		if block == nil {
			return
		}

		pubKey, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return
		}

		if rsaPubKey, ok := pubKey.(*rsa.PublicKey); ok {
			config.PublicKey = rsaPubKey
			config.SigningMethod = jwt.SigningMethodRS256
		}
	}
}

// WithTokenLookup sets where to look for the token
func WithTokenLookup(lookup string) JWTOption {
	return func(config *JWTConfig) {
		config.TokenLookup = lookup
	}
}

// WithAuthScheme sets the authorization scheme
func WithAuthScheme(scheme string) JWTOption {
	return func(config *JWTConfig) {
		config.AuthScheme = scheme
	}
}

// WithErrorHandler sets custom error handler
func WithErrorHandler(handler func(http.ResponseWriter, *http.Request, error)) JWTOption {
	return func(config *JWTConfig) {
		config.ErrorHandler = handler
	}
}

// WithSuccessHandler sets custom success handler
func WithSuccessHandler(handler func(*http.Request, *jwt.Token) error) JWTOption {
	return func(config *JWTConfig) {
		config.SuccessHandler = handler
	}
}

// WithSkipper sets the skipper function
func WithSkipper(skipper func(*http.Request) bool) JWTOption {
	return func(config *JWTConfig) {
		config.Skipper = skipper
	}
}

// WithSigningMethod sets the signing method
func WithSigningMethod(method jwt.SigningMethod) JWTOption {
	return func(config *JWTConfig) {
		config.SigningMethod = method
	}
}

type contextKey int

const claimsContextKey contextKey = 0

// ClaimsFromContext returns the claims of the verified token that admitted
// the request.
func ClaimsFromContext(ctx context.Context) (jwt.MapClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(jwt.MapClaims)
	return claims, ok
}

// JWT creates a new JWT middleware with the given options
func JWT(opts ...JWTOption) Middleware {
	config := DefaultJWTConfig()

	for _, opt := range opts {
		opt(config)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip if skipper returns true
			if config.Skipper(r) {
				next.ServeHTTP(w, r)
				return
			}

			// Extract token from request
			token, err := extractToken(r, config)
			if err != nil {
				config.ErrorHandler(w, r, err)
				return
			}

			// Parse and validate token
			parsedToken, err := parseToken(token, config)
			if err != nil {
				config.ErrorHandler(w, r, err)
				return
			}

			// Store claims on the request context
			if claims, ok := parsedToken.Claims.(jwt.MapClaims); ok {
				r = r.WithContext(context.WithValue(r.Context(), claimsContextKey, claims))
			}

			// Call success handler if provided
			if config.SuccessHandler != nil {
				if err := config.SuccessHandler(r, parsedToken); err != nil {
					config.ErrorHandler(w, r, err)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the JWT token from the request
func extractToken(r *http.Request, config *JWTConfig) (string, error) {
	parts := strings.Split(config.TokenLookup, ":")
	if len(parts) != 2 {
		return "", errors.New("invalid token lookup format")
	}

	method := parts[0]
	key := parts[1]

	switch method {
	case "header":
		auth := r.Header.Get(key)
		if auth == "" {
			return "", errors.New("missing authorization header")
		}

		if config.AuthScheme != "" {
			prefix := config.AuthScheme + " "
			if !strings.HasPrefix(auth, prefix) {
				return "", fmt.Errorf("invalid authorization scheme, expected %s", config.AuthScheme)
			}
			return strings.TrimPrefix(auth, prefix), nil
		}
		return auth, nil

	case "query":
		token := r.URL.Query().Get(key)
		if token == "" {
			return "", errors.New("missing token in query parameters")
		}
		return token, nil

	case "cookie":
		cookie, err := r.Cookie(key)
		if err != nil {
			return "", errors.New("missing token in cookie")
		}
		return cookie.Value, nil

	default:
		return "", errors.New("unsupported token lookup method")
	}
}

// parseToken parses and validates the JWT token
func parseToken(tokenString string, config *JWTConfig) (*jwt.Token, error) {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if token.Method != config.SigningMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		switch config.SigningMethod {
		case jwt.SigningMethodHS256, jwt.SigningMethodHS384, jwt.SigningMethodHS512:
			if config.Secret == nil {
				return nil, errors.New("HMAC secret not configured")
			}
			return config.Secret, nil

		case jwt.SigningMethodRS256, jwt.SigningMethodRS384, jwt.SigningMethodRS512:
			if config.PublicKey != nil {
				return config.PublicKey, nil
			}
			return nil, errors.New("RSA public key not configured")

		default:
			return nil, fmt.Errorf("unsupported signing method: %v", config.SigningMethod)
		}
	}

	token, err := jwt.Parse(tokenString, keyFunc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %v", err)
	}

	// Validate token
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// Check standard claims
	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		// Check expiration
		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				return nil, errors.New("token has expired")
			}
		}

		// Check not before
		if nbf, ok := claims["nbf"].(float64); ok {
			if time.Now().Unix() < int64(nbf) {
				return nil, errors.New("token not valid yet")
			}
		}

		// Check issued at
		if iat, ok := claims["iat"].(float64); ok {
			if time.Now().Unix() < int64(iat) {
				return nil, errors.New("token issued in the future")
			}
		}
	}

	return token, nil
}

// CreateToken creates a signed JWT with the given claims and config. Useful
// for testing HMAC setups; RSA signing belongs to the issuing service.
func CreateToken(claims jwt.MapClaims, config *JWTConfig) (string, error) {
	token := jwt.NewWithClaims(config.SigningMethod, claims)

	switch config.SigningMethod {
	case jwt.SigningMethodHS256, jwt.SigningMethodHS384, jwt.SigningMethodHS512:
		if config.Secret == nil {
			return "", errors.New("HMAC secret not configured")
		}
		return token.SignedString(config.Secret)

	case jwt.SigningMethodRS256, jwt.SigningMethodRS384, jwt.SigningMethodRS512:
		return "", errors.New("RSA token creation requires private key")

	default:
		return "", fmt.Errorf("unsupported signing method: %v", config.SigningMethod)
	}
}
