package openapi

import "net/http"

// WrapStream registers handler as a streaming endpoint (text/event-stream)
// in the OpenAPI spec. It returns the original handler unchanged.
func WrapStream(g *Generator, method, path string, handler http.Handler, opts ...OperationOption) http.Handler {
	op := Operation{
		Summary: path,
		Responses: map[string]*Response{
			"200": {
				Description: "Stream Response",
				Content: map[string]*MediaType{
					"text/event-stream": {
						Schema: &Schema{Type: "string"},
					},
				},
			},
		},
	}
	for _, opt := range opts {
		opt(&op)
	}
	g.AddRoute(method, path, op)
	return handler
}
