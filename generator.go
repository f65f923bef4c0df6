package openapi

import (
	"reflect"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Generator struct {
	Spec *OpenAPI

	extensions []SchemaExtension
	logger     *zap.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the logger for schema registration diagnostics. The
// default logger discards everything.
func WithLogger(logger *zap.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithExtensions registers schema extensions. Dispatch order is the order
// given here, before anything added later via RegisterExtension.
func WithExtensions(exts ...SchemaExtension) GeneratorOption {
	return func(g *Generator) {
		g.extensions = append(g.extensions, exts...)
	}
}

func NewGenerator(info Info, opts ...GeneratorOption) *Generator {
	g := &Generator{
		Spec: &OpenAPI{
			OpenAPI: "3.0.0",
			Info:    info,
			Paths:   make(Paths),
			Components: &Components{
				Schemas: make(map[string]*Schema),
			},
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RegisterExtension appends ext to the dispatch list.
func (g *Generator) RegisterExtension(ext SchemaExtension) {
	g.extensions = append(g.extensions, ext)
}

func (g *Generator) AddRoute(method, path string, op Operation) {
	if g.Spec.Paths[path] == nil {
		g.Spec.Paths[path] = &PathItem{}
	}
	item := g.Spec.Paths[path]
	method = strings.ToUpper(method)
	switch method {
	case "GET":
		item.Get = &op
	case "POST":
		item.Post = &op
	case "PUT":
		item.Put = &op
	case "DELETE":
		item.Delete = &op
	case "PATCH":
		item.Patch = &op
	case "OPTIONS":
		item.Options = &op
	case "HEAD":
		item.Head = &op
	}
}

// RegisterSchemaIfAbsent inserts s into the document's schema components
// unless a component of that name already exists. The first writer wins; a
// duplicate with a different body is logged but never replaces the original.
//
// Document building is a single-threaded startup activity. This method does
// not synchronize and is not safe for concurrent builds.
func (g *Generator) RegisterSchemaIfAbsent(name string, s *Schema) bool {
	if existing, ok := g.Spec.Components.Schemas[name]; ok {
		if !reflect.DeepEqual(existing, s) {
			g.logger.Warn("schema component already registered with a different body",
				zap.String("component", name))
		}
		return false
	}
	g.Spec.Components.Schemas[name] = s
	return true
}

// GenerateSchema creates a schema for v and registers named schemas in
// Components. v may be a value or a reflect.Type. Registered extensions are
// consulted first, in order; the first match produces a named component and
// a reference to it. Everything else goes through the reflection walker.
func (g *Generator) GenerateSchema(v interface{}) (*Schema, error) {
	for _, ext := range g.extensions {
		if !ext.Matches(v) {
			continue
		}
		name := ext.NameFor(v)
		g.logger.Debug("schema extension matched", zap.String("component", name))
		fragment, err := ext.SchemaFor(g, v)
		if err != nil {
			return nil, err
		}
		g.RegisterSchemaIfAbsent(name, fragment)
		return RefTo(name), nil
	}

	t, ok := v.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(v)
	}
	if t == nil {
		return &Schema{}, nil
	}
	return g.generateSchemaType(t), nil
}

func (g *Generator) generateSchemaType(t reflect.Type) *Schema {
	if t.Kind() == reflect.Ptr {
		t = t.Elem() // Dereference pointer
	}

	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Slice, reflect.Array:
		// Special case for byte slice -> string/binary
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{Type: "string", Format: "binary"}
		}
		return &Schema{
			Type:  "array",
			Items: g.generateSchemaType(t.Elem()),
		}
	case reflect.Map:
		return &Schema{
			Type:                 "object",
			AdditionalProperties: g.generateSchemaType(t.Elem()),
		}
	case reflect.Interface:
		return &Schema{} // any value
	case reflect.Struct:
		// Check for time.Time
		if t == reflect.TypeOf(time.Time{}) {
			return &Schema{Type: "string", Format: "date-time"}
		}

		name := t.Name()
		// If unnamed struct, generate inline
		if name == "" {
			return g.generateStructSchema(t)
		}

		// Register in Components if not exists
		if _, ok := g.Spec.Components.Schemas[name]; !ok {
			// Placeholder to prevent infinite recursion
			g.Spec.Components.Schemas[name] = &Schema{}
			schema := g.generateStructSchema(t)
			g.Spec.Components.Schemas[name] = schema
		}
		return RefTo(name)

	default:
		return &Schema{Type: "string"} // Fallback
	}
}

func (g *Generator) generateStructSchema(t reflect.Type) *Schema {
	schema := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema),
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		// Ignore unexported fields
		if field.PkgPath != "" {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := field.Name
		if parts := strings.Split(jsonTag, ","); parts[0] != "" {
			name = parts[0]
		}

		schema.Properties[name] = g.generateSchemaType(field.Type)
	}
	return schema
}
