package validate

import (
	"context"
	"testing"
)

func toolResponse(text string) map[string]any {
	return map[string]any{
		"result": map[string]any{
			"content": []any{
				map[string]any{"type": "text", "text": text},
			},
		},
	}
}

func intPtr(i int) *int { return &i }

func TestContainsText(t *testing.T) {
	tests := []struct {
		name      string
		validator ContainsText
		response  map[string]any
		wantPass  bool
	}{
		{
			name:      "plain_text_match",
			validator: ContainsText{Expected: "required parameter"},
			response:  toolResponse("Error: missing required parameter name"),
			wantPass:  true,
		},
		{
			name:      "plain_text_mismatch",
			validator: ContainsText{Expected: "created"},
			response:  toolResponse("operation failed"),
			wantPass:  false,
		},
		{
			name:      "json_envelope_inner_text",
			validator: ContainsText{Expected: "Successfully created job"},
			response:  toolResponse(`{"isError": false, "content": [{"type": "text", "text": "Successfully created job test-job"}]}`),
			wantPass:  true,
		},
		{
			name:      "json_envelope_count_match",
			validator: ContainsText{Expected: "workgroups", Count: intPtr(2)},
			response:  toolResponse(`{"content": [{"type": "text", "text": "Found 2 workgroups"}], "count": 2}`),
			wantPass:  true,
		},
		{
			name:      "json_envelope_count_mismatch",
			validator: ContainsText{Expected: "workgroups", Count: intPtr(3)},
			response:  toolResponse(`{"content": [{"type": "text", "text": "Found 2 workgroups"}], "count": 2}`),
			wantPass:  false,
		},
		{
			name:      "json_envelope_bucket_count",
			validator: ContainsText{Expected: "buckets", BucketCount: intPtr(1)},
			response:  toolResponse(`{"content": [{"type": "text", "text": "Listed buckets"}], "bucket_count": 1}`),
			wantPass:  true,
		},
		{
			name:      "missing_count_field",
			validator: ContainsText{Expected: "jobs", Count: intPtr(1)},
			response:  toolResponse(`{"content": [{"type": "text", "text": "Listed jobs"}]}`),
			wantPass:  false,
		},
		{
			name:      "no_text_content",
			validator: ContainsText{Expected: "anything"},
			response:  map[string]any{"result": map[string]any{"content": []any{}}},
			wantPass:  false,
		},
		{
			name:      "json_envelope_without_embedded_text",
			validator: ContainsText{Expected: "mcp_db"},
			response:  toolResponse(`{"database": {"name": "mcp_db"}}`),
			wantPass:  false,
		},
		{
			name:      "json_envelope_non_string_text",
			validator: ContainsText{Expected: "42"},
			response:  toolResponse(`{"content": [{"type": "text", "text": 42}]}`),
			wantPass:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.validator.Validate(context.Background(), nil, tt.response, nil)
			if got.Success != tt.wantPass {
				t.Errorf("Validate() success = %v, want %v (message: %s)", got.Success, tt.wantPass, got.Message)
			}
		})
	}
}
