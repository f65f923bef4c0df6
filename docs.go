package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

// ScalarHTML returns a simple HTML page that loads the Scalar API reference.
// url is the path to the OpenAPI JSON file (e.g. "/swagger.json").
func ScalarHTML(url string) string {
	return fmt.Sprintf(`<!doctype html>
<html>
  <head>
    <title>API Reference</title>
    <meta charset="utf-8" />
    <meta
      name="viewport"
      content="width=device-width, initial-scale=1" />
    <style>
      body {
        margin: 0;
      }
    </style>
  </head>
  <body>
    <script
      id="api-reference"
      data-url="%s"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"></script>
  </body>
</html>`, url)
}

// SpecYAML renders the document as YAML. The document is marshalled to JSON
// first so the YAML rendition carries exactly the same field names and
// omissions as the JSON one.
func (g *Generator) SpecYAML() ([]byte, error) {
	data, err := json.Marshal(g.Spec)
	if err != nil {
		return nil, err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// SpecHandler serves the document as JSON.
func (g *Generator) SpecHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := json.Marshal(g.Spec)
		if err != nil {
			WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})
}

// SpecYAMLHandler serves the document as YAML.
func (g *Generator) SpecYAMLHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := g.SpecYAML()
		if err != nil {
			WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(data)
	})
}

// DocsHandler serves the Scalar API reference page pointing at specURL.
func (g *Generator) DocsHandler(specURL string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, ScalarHTML(specURL))
	})
}

// Mount registers the documentation endpoints on mux under prefix:
// {prefix}/openapi.json, {prefix}/openapi.yaml and {prefix}/docs.
func (g *Generator) Mount(mux *http.ServeMux, prefix string) {
	prefix = strings.TrimSuffix(prefix, "/")
	mux.Handle(prefix+"/openapi.json", g.SpecHandler())
	mux.Handle(prefix+"/openapi.yaml", g.SpecYAMLHandler())
	mux.Handle(prefix+"/docs", g.DocsHandler(prefix+"/openapi.json"))
}
