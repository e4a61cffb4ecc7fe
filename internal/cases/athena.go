package cases

import (
	"github.com/awslabs/dataprocessing-mcp-harness/internal/cleanup"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/harness"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/naming"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/testcase"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/validate"
)

// AthenaWorkGroups covers the workgroup lifecycle plus the missing-parameter
// error path.
func AthenaWorkGroups(env *Env) harness.Group {
	wgName := naming.UniqueUnderscored("mcp_test_workgroup")

	return harness.Group{
		Name: "athena_workgroups",
		Cases: []testcase.TestCase{
			{
				Name: "create_work_group",
				Tool: "manage_aws_athena_workgroups",
				Input: map[string]any{
					"operation":   "create-work-group",
					"name":        wgName,
					"description": "integration test workgroup",
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: "Successfully created work group"},
					validate.AWSResource{
						Ops:          env.Ops,
						Operation:    "get_work_group",
						Params:       map[string]any{"work_group": wgName, "name": wgName},
						ExpectedKeys: []string{"description"},
					},
				},
				CleanUps: []testcase.Cleanup{
					cleanup.DeleteAWSResources{
						Ops:       env.Ops,
						DeleteAPI: "delete_work_group",
						Params: map[string]any{
							"work_group":              wgName,
							"recursive_delete_option": true,
						},
					},
				},
			},
			{
				Name: "create_work_group_missing_name",
				Tool: "manage_aws_athena_workgroups",
				Input: map[string]any{
					"operation": "create-work-group",
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: "name"},
				},
			},
			{
				Name:         "get_work_group",
				Tool:         "manage_aws_athena_workgroups",
				Dependencies: []string{"create_work_group"},
				Input: map[string]any{
					"operation": "get-work-group",
					"name":      wgName,
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: wgName},
				},
			},
			{
				Name:         "list_work_groups",
				Tool:         "manage_aws_athena_workgroups",
				Dependencies: []string{"create_work_group"},
				Input: map[string]any{
					"operation": "list-work-groups",
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: wgName},
				},
			},
			{
				Name:         "update_work_group",
				Tool:         "manage_aws_athena_workgroups",
				Dependencies: []string{"create_work_group"},
				Input: map[string]any{
					"operation":   "update-work-group",
					"name":        wgName,
					"description": "updated integration test workgroup",
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:          env.Ops,
						Operation:    "get_work_group",
						Params:       map[string]any{"work_group": wgName, "name": wgName},
						ExpectedKeys: []string{"description"},
					},
				},
			},
			{
				Name:         "delete_work_group",
				Tool:         "manage_aws_athena_workgroups",
				Dependencies: []string{"create_work_group", "update_work_group"},
				Input: map[string]any{
					"operation": "delete-work-group",
					"name":      wgName,
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:             env.Ops,
						Operation:       "get_work_group",
						Params:          map[string]any{"work_group": wgName, "name": wgName},
						ValidateAbsence: true,
					},
				},
			},
		},
	}
}

// AthenaNamedQueries covers named queries, whose IDs are server-assigned and
// must be injected from the create response.
func AthenaNamedQueries(env *Env) harness.Group {
	queryName := naming.UniqueUnderscored("mcp_test_query")

	return harness.Group{
		Name: "athena_named_queries",
		Cases: []testcase.TestCase{
			{
				Name: "create_named_query",
				Tool: "manage_aws_athena_named_queries",
				Input: map[string]any{
					"operation":    "create-named-query",
					"name":         queryName,
					"database":     "default",
					"query_string": "SELECT 1",
					"description":  "integration test query",
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:       env.Ops,
						Operation: "get_named_query",
						Params:    map[string]any{},
						Injectable: map[string]string{
							"named_query_id": "{{create_named_query.result.content[0].text.named_query_id}}",
						},
						ExpectedKeys: []string{"description"},
					},
				},
				CleanUps: []testcase.Cleanup{
					cleanup.DeleteAWSResources{
						Ops:            env.Ops,
						DeleteAPI:      "delete_named_query",
						Params:         map[string]any{},
						ResourceField:  "named_query_id",
						TargetParamKey: "named_query_id",
					},
				},
			},
			{
				Name:         "get_named_query",
				Tool:         "manage_aws_athena_named_queries",
				Dependencies: []string{"create_named_query"},
				Input: map[string]any{
					"operation":      "get-named-query",
					"named_query_id": "{{create_named_query.result.content[0].text.named_query_id}}",
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: queryName},
				},
			},
		},
	}
}
