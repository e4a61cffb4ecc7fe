package awsops

import (
	"reflect"
	"testing"
)

func TestNormalizeParams(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want map[string]any
	}{
		{
			name: "mapped_keys",
			in:   map[string]any{"job_name": "j", "database_name": "d"},
			want: map[string]any{"JobName": "j", "DatabaseName": "d"},
		},
		{
			name: "table_name_maps_to_name",
			in:   map[string]any{"table_name": "t"},
			want: map[string]any{"Name": "t"},
		},
		{
			name: "session_and_run_identifiers",
			in:   map[string]any{"session_id": "s", "run_id": "jr_1"},
			want: map[string]any{"Id": "s", "RunId": "jr_1"},
		},
		{
			name: "unmapped_keys_pass_through",
			in:   map[string]any{"WorkGroup": "wg", "custom": 1},
			want: map[string]any{"WorkGroup": "wg", "custom": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeParams(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeParams() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCamelCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"job_name", "JobName"},
		{"release_label", "ReleaseLabel"},
		{"JobFlowIds", "JobFlowIds"}, // already SDK-case
		{"WorkGroup", "WorkGroup"},   // mixed case is left alone
		{"id", "id"},                 // no underscore, no conversion
		{"step_concurrency_level", "StepConcurrencyLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CamelCase(tt.in); got != tt.want {
				t.Errorf("CamelCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResourceARN(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		service   string
		params    map[string]any
		want      string
		wantErr   bool
	}{
		{
			name:      "glue_job",
			operation: "get_job",
			service:   "glue",
			params:    map[string]any{"job_name": "mcp-test-job"},
			want:      "arn:aws:glue:eu-west-1:123456789012:job/mcp-test-job",
		},
		{
			name:      "glue_table_concatenates_identifiers",
			operation: "get_table",
			service:   "glue",
			params:    map[string]any{"database_name": "db", "table_name": "tbl"},
			want:      "arn:aws:glue:eu-west-1:123456789012:table/db/tbl",
		},
		{
			name:      "athena_workgroup",
			operation: "get_work_group",
			service:   "athena",
			params:    map[string]any{"name": "mcp_test_workgroup"},
			want:      "arn:aws:athena:eu-west-1:123456789012:workgroup/mcp_test_workgroup",
		},
		{
			name:      "partition_values_list",
			operation: "get_partition",
			service:   "glue",
			params: map[string]any{
				"database_name":    "db",
				"table_name":       "tbl",
				"partition_values": []any{"2024", "01"},
			},
			want: "arn:aws:glue:eu-west-1:123456789012:partition/db/tbl/2024/01",
		},
		{
			name:      "s3_has_no_arn",
			operation: "get_object",
			service:   "s3",
			params:    map[string]any{},
			want:      "",
		},
		{
			name:      "missing_identifier",
			operation: "get_job",
			service:   "glue",
			params:    map[string]any{},
			wantErr:   true,
		},
		{
			name:      "unsupported_operation",
			operation: "describe_step",
			service:   "emr",
			params:    map[string]any{},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResourceARN(tt.operation, tt.service, "eu-west-1", "123456789012", tt.params)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ResourceARN() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ResourceARN() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResourceARN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServiceFor(t *testing.T) {
	if got := ServiceFor("describe_cluster"); got != "emr" {
		t.Errorf("ServiceFor(describe_cluster) = %q, want emr", got)
	}
	if got := ServiceFor("nonexistent"); got != "" {
		t.Errorf("ServiceFor(nonexistent) = %q, want empty", got)
	}
}
