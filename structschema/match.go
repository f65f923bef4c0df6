package structschema

import (
	"reflect"
	"time"
)

// Matcher decides whether the extension claims an element type.
type Matcher func(reflect.Type) bool

// MatchStructs claims every named struct type. time.Time is excluded so the
// reflection walker keeps documenting it as a date-time string instead of a
// "Time" component.
func MatchStructs() Matcher {
	timeType := reflect.TypeOf(time.Time{})
	return func(t reflect.Type) bool {
		return t.Kind() == reflect.Struct && t.Name() != "" && t != timeType
	}
}

// MatchImplements claims named struct types implementing the given marker
// interface, by value or pointer receiver. Pass a nil pointer to the
// interface type:
//
//	structschema.MatchImplements((*Documentable)(nil))
func MatchImplements(iface interface{}) Matcher {
	t := reflect.TypeOf(iface)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Interface {
		panic("structschema: MatchImplements requires a pointer to an interface type, e.g. (*Marker)(nil)")
	}
	it := t.Elem()
	return func(t reflect.Type) bool {
		if t.Kind() != reflect.Struct || t.Name() == "" {
			return false
		}
		return t.Implements(it) || reflect.PointerTo(t).Implements(it)
	}
}

// MatchExact claims exactly the given types, nothing else. Values and
// reflect.Type arguments are both accepted.
func MatchExact(types ...interface{}) Matcher {
	set := make(map[reflect.Type]struct{}, len(types))
	for _, target := range types {
		t, ok := target.(reflect.Type)
		if !ok {
			t = reflect.TypeOf(target)
		}
		if t != nil {
			set[t] = struct{}{}
		}
	}
	return func(t reflect.Type) bool {
		_, ok := set[t]
		return ok
	}
}
