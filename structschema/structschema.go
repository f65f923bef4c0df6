// Package structschema documents plain struct types through the
// invopop/jsonschema compiler instead of the openapi package's reflection
// walker. Register an Extension with a Generator and every matching
// request/response type is compiled to a named schema component, with the
// schemas of nested structs registered alongside it:
//
//	gen := openapi.NewGenerator(info, openapi.WithExtensions(structschema.New()))
//
// Targets may be values, reflect.Type values, or slices of either; a slice
// target documents as "array of T" under a distinct ArrayOf-prefixed
// component name.
package structschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/buildwithgo/openapi"
	"github.com/invopop/jsonschema"
)

const arrayPrefix = "ArrayOf"

const defsPrefix = "#/$defs/"

// Extension resolves struct and slice-of-struct targets to named schema
// components. It implements openapi.SchemaExtension.
type Extension struct {
	reflector *jsonschema.Reflector
	match     Matcher
}

// Option configures an Extension.
type Option func(*Extension)

// WithReflector replaces the schema compiler configuration. Custom namers
// are respected by NameFor, so component names always agree with the
// compiler's own definition keys.
func WithReflector(r *jsonschema.Reflector) Option {
	return func(e *Extension) {
		e.reflector = r
	}
}

// WithMatcher replaces the predicate deciding which element types the
// extension claims.
func WithMatcher(m Matcher) Option {
	return func(e *Extension) {
		e.match = m
	}
}

// New creates an Extension. By default it claims every named struct type
// except time.Time (see MatchStructs) and compiles with a reflector that
// emits no $id and leaves additionalProperties open.
func New(opts ...Option) *Extension {
	e := &Extension{
		reflector: &jsonschema.Reflector{
			Anonymous:                 true,
			AllowAdditionalProperties: true,
		},
		match: MatchStructs(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Matches reports whether target resolves to an element type the configured
// matcher claims. It never panics; unresolvable targets are a non-match.
func (e *Extension) Matches(target interface{}) bool {
	rt := resolveTarget(target)
	if rt.Elem == nil {
		return false
	}
	return e.match(rt.Elem)
}

// NameFor returns the component name for target: the element type's name,
// prefixed with "ArrayOf" for slice and array targets so the array form
// never collides with the element's own component.
func (e *Extension) NameFor(target interface{}) string {
	rt := resolveTarget(target)
	if rt.Elem == nil {
		return ""
	}
	name := e.componentName(rt.Elem)
	if rt.IsList {
		return arrayPrefix + name
	}
	return name
}

// SchemaFor compiles target into a schema fragment. The original target
// shape is handed to the compiler, so slice targets come back array-framed
// while bare struct targets come back as a reference into the compiler's
// $defs; in the latter case the target's own definition is extracted from
// the defs and returned directly. Every remaining definition is registered
// through reg in sorted name order, never overwriting existing components.
//
// Compiler failures are returned as errors and nothing is registered.
func (e *Extension) SchemaFor(reg openapi.SchemaRegistry, target interface{}) (*openapi.Schema, error) {
	rt := resolveTarget(target)
	if rt.Elem == nil {
		return nil, fmt.Errorf("structschema: cannot resolve %T to a schema target", target)
	}

	compiled, err := e.compile(rt.Outer)
	if err != nil {
		return nil, err
	}

	root, err := convert(compiled)
	if err != nil {
		return nil, err
	}

	defs := root.Defs
	root.Defs = nil

	// An explicit type at the root means the compiler framed the target
	// itself (array or primitive); use it as-is. Otherwise the root is just
	// a reference and the real schema sits in the defs under the element's
	// name: pull it out so it is returned, not registered as a sibling.
	fragment := root
	if root.Type == "" {
		name := e.componentName(rt.Elem)
		fragment = defs[name]
		if fragment == nil {
			return nil, fmt.Errorf("structschema: compiler produced no definition named %q for %s", name, rt.Elem)
		}
		delete(defs, name)
	}

	rewriteRefs(fragment)

	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		def := defs[name]
		rewriteRefs(def)
		reg.RegisterSchemaIfAbsent(name, def)
	}

	return fragment, nil
}

// componentName mirrors the compiler's definition naming so lookups into
// its $defs always agree with NameFor.
func (e *Extension) componentName(t reflect.Type) string {
	if e.reflector.Namer != nil {
		if name := e.reflector.Namer(t); name != "" {
			return name
		}
	}
	return t.Name()
}

// compile runs the reflector. The compiler rejects types it cannot express
// (channels, functions) by panicking; that surfaces here as an error.
func (e *Extension) compile(t reflect.Type) (s *jsonschema.Schema, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("structschema: compiling %s: %v", t, r)
		}
	}()
	return e.reflector.ReflectFromType(t), nil
}

// convert moves the compiler's schema into the document model through its
// JSON form.
func convert(s *jsonschema.Schema) (*openapi.Schema, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("structschema: encoding compiled schema: %w", err)
	}
	out := &openapi.Schema{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("structschema: decoding compiled schema: %w", err)
	}
	return out, nil
}

// rewriteRefs moves compiler-local $defs references onto the document's
// components section, in place, throughout the tree.
func rewriteRefs(s *openapi.Schema) {
	if s == nil {
		return
	}
	if strings.HasPrefix(s.Ref, defsPrefix) {
		s.Ref = openapi.SchemaRefPrefix + strings.TrimPrefix(s.Ref, defsPrefix)
	}
	rewriteRefs(s.Items)
	rewriteRefs(s.Not)
	rewriteRefs(s.AdditionalProperties)
	for _, p := range s.Properties {
		rewriteRefs(p)
	}
	for _, sub := range s.AllOf {
		rewriteRefs(sub)
	}
	for _, sub := range s.OneOf {
		rewriteRefs(sub)
	}
	for _, sub := range s.AnyOf {
		rewriteRefs(sub)
	}
	for _, def := range s.Defs {
		rewriteRefs(def)
	}
}
