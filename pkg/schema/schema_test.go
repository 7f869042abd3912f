package schema

import "testing"

func colorSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"color": map[string]any{"type": "string"},
		},
		"required": []any{"color"},
	}
}

func TestValidate(t *testing.T) {
	v := New()

	if !v.Validate(map[string]any{"color": "red"}, colorSchema()) {
		t.Fatalf("conforming value rejected")
	}
	if v.Validate(map[string]any{"color": 5}, colorSchema()) {
		t.Fatalf("wrong-typed property accepted")
	}
	if v.Validate(map[string]any{}, colorSchema()) {
		t.Fatalf("missing required property accepted")
	}
}

func TestValidate_ArrayOfScalars(t *testing.T) {
	s := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tags": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	}
	v := New()
	if !v.Validate(map[string]any{"tags": []any{"a", "b"}}, s) {
		t.Fatalf("string array rejected")
	}
	if v.Validate(map[string]any{"tags": []any{"a", 1}}, s) {
		t.Fatalf("mixed array accepted")
	}
}
