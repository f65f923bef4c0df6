package structschema

import "reflect"

// resolvedTarget is the unwrapped form of a documentation target: the outer
// type handed to the compiler, the element type that naming and matching
// operate on, and whether the outer shape was a sequence.
type resolvedTarget struct {
	Outer  reflect.Type
	Elem   reflect.Type
	IsList bool
}

// resolveTarget normalizes a documentation target. A reflect.Type is used
// directly; any other value falls back to its runtime type, which keeps
// framework-supplied wrapper values documentable without enumerating their
// shapes. Pointers are dereferenced, and exactly one level of slice or
// array nesting is unwrapped (a deeper nesting leaves a non-struct element
// for the matcher to reject). A nil target resolves to the zero value.
func resolveTarget(target interface{}) resolvedTarget {
	t, ok := target.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(target)
	}
	if t == nil {
		return resolvedTarget{}
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	rt := resolvedTarget{Outer: t, Elem: t}
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		elem := t.Elem()
		for elem.Kind() == reflect.Ptr {
			elem = elem.Elem()
		}
		rt.Elem = elem
		rt.IsList = true
	}
	return rt
}
