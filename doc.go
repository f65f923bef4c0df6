// Package openapi provides an OpenAPI v3 specification generator for net/http
// services. It supports schema reflection, typed handlers, comment parsing, and
// pluggable schema extensions that delegate struct schemas to an external
// compiler, and it serves the finished document as JSON, YAML, or a reference UI.
package openapi
