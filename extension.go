package openapi

// SchemaRefPrefix is the reference path under which schema components are
// registered in the document.
const SchemaRefPrefix = "#/components/schemas/"

// RefTo returns a schema referencing the named component.
func RefTo(name string) *Schema {
	return &Schema{Ref: SchemaRefPrefix + name}
}

// SchemaRegistry is the write-if-absent view of the document's shared schema
// components, handed to extensions while they resolve a target.
type SchemaRegistry interface {
	// RegisterSchemaIfAbsent inserts s under name only when no component of
	// that name exists yet, and reports whether it wrote. Existing entries
	// are never overwritten.
	RegisterSchemaIfAbsent(name string, s *Schema) bool
}

// SchemaExtension documents types the reflection walker does not own,
// typically by delegating to an external schema compiler. The generator
// consults extensions in registration order and the first whose Matches
// reports true handles the target.
type SchemaExtension interface {
	// Matches reports whether this extension should document target.
	// It must not panic, whatever the target.
	Matches(target interface{}) bool

	// NameFor returns the component name for target. It must be
	// deterministic and collision-free across the targets the extension
	// matches.
	NameFor(target interface{}) string

	// SchemaFor returns target's schema fragment, registering any schemas
	// the fragment references through reg.
	SchemaFor(reg SchemaRegistry, target interface{}) (*Schema, error)
}
