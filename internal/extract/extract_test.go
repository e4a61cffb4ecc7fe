package extract

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		root any
		path string
		want any
	}{
		{
			name: "nested_fields",
			root: map[string]any{"a": map[string]any{"b": "c"}},
			path: "a.b",
			want: "c",
		},
		{
			name: "array_index",
			root: []any{"zero", "one", "two"},
			path: "[1]",
			want: "one",
		},
		{
			name: "mixed_fields_and_indices",
			root: map[string]any{
				"result": map[string]any{
					"content": []any{
						map[string]any{"text": "hello"},
					},
				},
			},
			path: "result.content[0].text",
			want: "hello",
		},
		{
			name: "json_encoded_string_is_reparsed",
			root: map[string]any{"field": `{"x": 1}`},
			path: "field.x",
			want: float64(1),
		},
		{
			name: "json_string_inside_tool_envelope",
			root: map[string]any{
				"result": map[string]any{
					"content": []any{
						map[string]any{"text": `{"cluster_id": "j-ABC123"}`},
					},
				},
			},
			path: "result.content[0].text.cluster_id",
			want: "j-ABC123",
		},
		{
			name: "empty_path_returns_root",
			root: map[string]any{"a": 1},
			path: "",
			want: map[string]any{"a": 1},
		},
		{
			name: "stray_separators_are_ignored",
			root: map[string]any{"a": map[string]any{"b": "c"}},
			path: "a..b",
			want: "c",
		},
		{
			name: "non_token_characters_are_ignored",
			root: map[string]any{"a": []any{"x"}},
			path: "a!![0]",
			want: "x",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.root, tt.path)
			if err != nil {
				t.Fatalf("Extract(%q) returned error: %v", tt.path, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name string
		root any
		path string
		want error
	}{
		{
			name: "index_on_object",
			root: map[string]any{"a": 1},
			path: "[0]",
			want: ErrTypeMismatch,
		},
		{
			name: "index_on_scalar",
			root: map[string]any{"a": "scalar"},
			path: "a[0]",
			want: ErrTypeMismatch,
		},
		{
			name: "index_out_of_range",
			root: []any{"only"},
			path: "[3]",
			want: ErrIndexOutOfRange,
		},
		{
			name: "index_beyond_int_range",
			root: []any{"only"},
			path: "[9223372036854775808]",
			want: ErrIndexOutOfRange,
		},
		{
			name: "missing_key",
			root: map[string]any{"present": 1},
			path: "missing",
			want: ErrKeyNotFound,
		},
		{
			name: "field_on_array",
			root: []any{"x"},
			path: "field",
			want: ErrKeyNotFound,
		},
		{
			name: "non_json_string",
			root: map[string]any{"field": "plain text, not json"},
			path: "field.x",
			want: ErrMalformedJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.root, tt.path)
			if !errors.Is(err, tt.want) {
				t.Errorf("Extract(%q) error = %v, want %v", tt.path, err, tt.want)
			}
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	root := map[string]any{"field": `{"x": [1, 2]}`}

	first, err1 := Extract(root, "field.x[1]")
	second, err2 := Extract(root, "field.x[1]")

	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs: %v vs %v", first, second)
	}
	// The embedded JSON string must not have been replaced in the input.
	if _, ok := root["field"].(string); !ok {
		t.Errorf("input was mutated: %T", root["field"])
	}
}
