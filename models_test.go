package openapi

import (
	"encoding/json"
	"testing"
)

func TestSchemaBooleanForms(t *testing.T) {
	t.Run("Marshal", func(t *testing.T) {
		data, err := json.Marshal(&Schema{
			Type:                 "object",
			AdditionalProperties: TrueSchema,
		})
		if err != nil {
			t.Fatal(err)
		}
		want := `{"type":"object","additionalProperties":true}`
		if string(data) != want {
			t.Errorf("Expected %s, got %s", want, data)
		}

		data, err = json.Marshal(FalseSchema)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "false" {
			t.Errorf("Expected false, got %s", data)
		}
	})

	t.Run("Unmarshal", func(t *testing.T) {
		var s Schema
		if err := json.Unmarshal([]byte(`{"type":"object","additionalProperties":false}`), &s); err != nil {
			t.Fatal(err)
		}
		if s.AdditionalProperties == nil {
			t.Fatal("Expected additionalProperties to survive")
		}
		round, err := json.Marshal(s.AdditionalProperties)
		if err != nil {
			t.Fatal(err)
		}
		if string(round) != "false" {
			t.Errorf("Expected boolean form to round-trip, got %s", round)
		}
	})

	t.Run("ObjectForm", func(t *testing.T) {
		var s Schema
		if err := json.Unmarshal([]byte(`{"type":"string","minLength":3}`), &s); err != nil {
			t.Fatal(err)
		}
		if s.Type != "string" || s.MinLength == nil || *s.MinLength != 3 {
			t.Errorf("Unexpected decoded schema: %+v", s)
		}
	})
}

func TestSchemaDefsRoundTrip(t *testing.T) {
	raw := `{"$ref":"#/$defs/Point","$defs":{"Point":{"type":"object","properties":{"x":{"type":"integer"}}}}}`
	var s Schema
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatal(err)
	}
	if s.Ref != "#/$defs/Point" {
		t.Errorf("Expected ref preserved, got %q", s.Ref)
	}
	def := s.Defs["Point"]
	if def == nil || def.Properties["x"] == nil || def.Properties["x"].Type != "integer" {
		t.Errorf("Expected $defs decoded, got %+v", def)
	}
}
