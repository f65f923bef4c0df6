// Package docsauth provides net/http middleware for protecting generated
// documentation endpoints (the spec and reference UI served by the openapi
// package) with bearer tokens, basic auth, or API keys.
package docsauth

import "net/http"

// Middleware wraps an http.Handler with an authentication check.
type Middleware func(http.Handler) http.Handler
