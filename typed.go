package openapi

import (
	"encoding/json"
	"net/http"
	"reflect"
)

// Bind decodes the request body into a new instance of T. Decode failures
// surface as a 400 *HTTPError with the cause attached as the internal error.
func Bind[T any](r *http.Request) (*T, error) {
	var req T
	if r.Body == nil || r.Body == http.NoBody {
		return &req, nil
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
	}
	return &req, nil
}

type TypedHandler[Req any, Res any] func(*http.Request, *Req) (*Res, error)

// OperationOption sets metadata on a generated operation.
type OperationOption func(*Operation)

// WithSummary sets the operation summary.
func WithSummary(summary string) OperationOption {
	return func(op *Operation) {
		op.Summary = summary
	}
}

// WithDescription sets the operation description.
func WithDescription(description string) OperationOption {
	return func(op *Operation) {
		op.Description = description
	}
}

// WithTags sets the operation tags.
func WithTags(tags ...string) OperationOption {
	return func(op *Operation) {
		op.Tags = tags
	}
}

// WithOperationID sets the operation id.
func WithOperationID(id string) OperationOption {
	return func(op *Operation) {
		op.OperationID = id
	}
}

// WithResponseDescription replaces the default "OK" description on the 200
// response.
func WithResponseDescription(description string) OperationOption {
	return func(op *Operation) {
		if res, ok := op.Responses["200"]; ok {
			res.Description = description
		}
	}
}

// WrapHandler wraps a typed handler, registers its operation with the
// generator, and returns a standard http.Handler. Request and response
// schemas are generated through the generator, so registered schema
// extensions apply to both. A schema generation failure aborts registration:
// the documentation build fails rather than emit a wrong document.
func WrapHandler[Req any, Res any](g *Generator, method, path string, handler TypedHandler[Req, Res], opts ...OperationOption) (http.Handler, error) {
	var reqModel Req
	reqSchema, err := g.GenerateSchema(reqModel)
	if err != nil {
		return nil, err
	}

	var resModel Res
	resSchema, err := g.GenerateSchema(resModel)
	if err != nil {
		return nil, err
	}

	op := Operation{
		Summary: path,
		Responses: map[string]*Response{
			"200": {
				Description: "OK",
				Content: map[string]*MediaType{
					"application/json": {Schema: resSchema},
				},
			},
		},
	}

	// Only document a request body when Req actually carries fields.
	reqType := reflect.TypeOf(reqModel)
	if reqType != nil && reqType.Kind() == reflect.Struct && reqType.NumField() > 0 {
		op.RequestBody = &RequestBody{
			Description: "Request Body",
			Required:    true,
			Content: map[string]*MediaType{
				"application/json": {Schema: reqSchema},
			},
		}
	}

	for _, opt := range opts {
		opt(&op)
	}

	g.AddRoute(method, path, op)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := Bind[Req](r)
		if err != nil {
			WriteError(w, err)
			return
		}
		res, err := handler(r, req)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(res)
	}), nil
}
