package structschema

import (
	"reflect"
	"testing"
)

type widget struct {
	Name string `json:"name"`
}

func TestResolveTarget(t *testing.T) {
	widgetType := reflect.TypeOf(widget{})
	sliceType := reflect.TypeOf([]widget{})

	cases := []struct {
		name     string
		target   interface{}
		outer    reflect.Type
		elem     reflect.Type
		isList   bool
		resolved bool
	}{
		{"Value", widget{}, widgetType, widgetType, false, true},
		{"Pointer", &widget{}, widgetType, widgetType, false, true},
		{"DoublePointer", new(*widget), widgetType, widgetType, false, true},
		{"Type", widgetType, widgetType, widgetType, false, true},
		{"Slice", []widget{}, sliceType, widgetType, true, true},
		{"SliceType", sliceType, sliceType, widgetType, true, true},
		{"SliceOfPointer", []*widget{}, reflect.TypeOf([]*widget{}), widgetType, true, true},
		{"PointerToSlice", &[]widget{}, sliceType, widgetType, true, true},
		{"Array", [2]widget{}, reflect.TypeOf([2]widget{}), widgetType, true, true},
		{"NestedSlice", [][]widget{}, reflect.TypeOf([][]widget{}), sliceType, true, true},
		{"Scalar", 7, reflect.TypeOf(7), reflect.TypeOf(7), false, true},
		{"Nil", nil, nil, nil, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveTarget(tc.target)
			if !tc.resolved {
				if got.Outer != nil || got.Elem != nil || got.IsList {
					t.Errorf("Expected zero resolvedTarget, got %+v", got)
				}
				return
			}
			if got.Outer != tc.outer {
				t.Errorf("Expected outer %v, got %v", tc.outer, got.Outer)
			}
			if got.Elem != tc.elem {
				t.Errorf("Expected elem %v, got %v", tc.elem, got.Elem)
			}
			if got.IsList != tc.isList {
				t.Errorf("Expected isList %v, got %v", tc.isList, got.IsList)
			}
		})
	}
}

func TestComponentNameFollowsNamer(t *testing.T) {
	ext := New()
	if got := ext.componentName(reflect.TypeOf(widget{})); got != "widget" {
		t.Errorf("Expected declared name, got %q", got)
	}
}
