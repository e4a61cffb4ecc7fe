package cases

import (
	"github.com/awslabs/dataprocessing-mcp-harness/internal/cleanup"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/harness"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/naming"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/testcase"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/validate"
)

// GlueJobs covers the job lifecycle plus the unmanaged-resource refusal.
func GlueJobs(env *Env) harness.Group {
	jobName := naming.Unique("mcp-test-job")
	workerJobName := naming.Unique("mcp-test-worker-job")

	jobDefinition := map[string]any{
		"role": env.RoleARN,
		"command": map[string]any{
			"name":            "glueetl",
			"script_location": env.ScriptLocation,
			"python_version":  "3",
		},
		"glue_version": "4.0",
	}

	return harness.Group{
		Name: "glue_jobs",
		Cases: []testcase.TestCase{
			{
				Name: "create_job",
				Tool: "manage_aws_glue_jobs",
				Input: map[string]any{
					"operation":      "create-job",
					"job_name":       jobName,
					"job_definition": jobDefinition,
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: "Successfully created job"},
					validate.AWSResource{
						Ops:          env.Ops,
						Operation:    "get_job",
						Params:       map[string]any{"job_name": jobName},
						ExpectedKeys: []string{"role", "glue_version"},
					},
				},
				CleanUps: []testcase.Cleanup{
					cleanup.DeleteAWSResources{
						Ops:       env.Ops,
						DeleteAPI: "delete_job",
						Params:    map[string]any{"job_name": jobName},
					},
				},
			},
			{
				Name: "create_job_with_workers",
				Tool: "manage_aws_glue_jobs",
				Input: map[string]any{
					"operation": "create-job",
					"job_name":  workerJobName,
					"job_definition": map[string]any{
						"role": env.RoleARN,
						"command": map[string]any{
							"name":            "glueetl",
							"script_location": env.ScriptLocation,
							"python_version":  "3",
						},
						"glue_version":      "4.0",
						"number_of_workers": 2,
						"worker_type":       "G.1X",
					},
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:          env.Ops,
						Operation:    "get_job",
						Params:       map[string]any{"job_name": workerJobName},
						ExpectedKeys: []string{"role", "number_of_workers", "worker_type"},
					},
				},
				CleanUps: []testcase.Cleanup{
					cleanup.DeleteAWSResources{
						Ops:       env.Ops,
						DeleteAPI: "delete_job",
						Params:    map[string]any{"job_name": workerJobName},
					},
				},
			},
			{
				Name:         "update_job",
				Tool:         "manage_aws_glue_jobs",
				Dependencies: []string{"create_job"},
				Input: map[string]any{
					"operation": "update-job",
					"job_name":  jobName,
					"job_definition": map[string]any{
						"role": env.RoleARN,
						"command": map[string]any{
							"name":            "glueetl",
							"script_location": env.ScriptLocation,
							"python_version":  "3",
						},
						"glue_version": "4.0",
						"max_retries":  1,
					},
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:          env.Ops,
						Operation:    "get_job",
						Params:       map[string]any{"job_name": jobName},
						ExpectedKeys: []string{"max_retries"},
					},
				},
			},
			{
				Name:         "run_job",
				Tool:         "manage_aws_glue_jobs",
				Dependencies: []string{"create_job"},
				Input: map[string]any{
					"operation": "start-job-run",
					"job_name":  jobName,
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:       env.Ops,
						Operation: "get_job_run",
						Params:    map[string]any{"job_name": jobName},
						Injectable: map[string]string{
							"run_id": "{{run_job.result.content[0].text.job_run_id}}",
						},
					},
				},
				CleanUps: []testcase.Cleanup{
					cleanup.DeleteAWSResources{
						Ops:            env.Ops,
						DeleteAPI:      "batch_stop_job_run",
						Params:         map[string]any{"job_name": jobName},
						ResourceField:  "job_run_id",
						TargetParamKey: "JobRunIds",
						ParamIsList:    true,
					},
				},
			},
			{
				Name: "update_non_mcp_job",
				Tool: "manage_aws_glue_jobs",
				Input: map[string]any{
					"operation": "update-job",
					"job_name":  env.NonMCPJobName,
					"job_definition": map[string]any{
						"role":         env.RoleARN,
						"glue_version": "4.0",
					},
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: "not managed by"},
				},
			},
			{
				Name:         "delete_job",
				Tool:         "manage_aws_glue_jobs",
				Dependencies: []string{"create_job"},
				Input: map[string]any{
					"operation": "delete-job",
					"job_name":  jobName,
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: "Successfully deleted"},
					validate.AWSResource{
						Ops:             env.Ops,
						Operation:       "get_job",
						Params:          map[string]any{"job_name": jobName},
						ValidateAbsence: true,
					},
				},
			},
		},
	}
}

// GlueDatabases covers the catalog database and table lifecycle.
func GlueDatabases(env *Env) harness.Group {
	dbName := naming.UniqueUnderscored("mcp_test_db")
	tableName := naming.UniqueUnderscored("mcp_test_table")

	return harness.Group{
		Name: "glue_databases",
		Cases: []testcase.TestCase{
			{
				Name: "create_database",
				Tool: "manage_aws_glue_databases",
				Input: map[string]any{
					"operation":     "create-database",
					"database_name": dbName,
					"description":   "integration test database",
					"location_uri":  "s3://" + env.Bucket + "/databases/" + dbName,
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: "Successfully created database"},
					validate.AWSResource{
						Ops:       env.Ops,
						Operation: "get_database",
						// GetDatabase addresses the database by Name; the
						// database_name key only feeds ARN construction.
						Params:       map[string]any{"name": dbName, "database_name": dbName},
						ExpectedKeys: []string{"description", "location_uri"},
					},
				},
				CleanUps: []testcase.Cleanup{
					cleanup.DeleteAWSResources{
						Ops:       env.Ops,
						DeleteAPI: "delete_database",
						Params:    map[string]any{"name": dbName},
					},
				},
			},
			{
				Name:         "get_database",
				Tool:         "manage_aws_glue_databases",
				Dependencies: []string{"create_database"},
				Input: map[string]any{
					"operation":     "get-database",
					"database_name": dbName,
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: dbName},
				},
			},
			{
				Name:         "create_table",
				Tool:         "manage_aws_glue_tables",
				Dependencies: []string{"create_database"},
				Input: map[string]any{
					"operation":     "create-table",
					"database_name": dbName,
					"table_name":    tableName,
					"table_input": map[string]any{
						"description": "integration test table",
						"storage_descriptor": map[string]any{
							"columns": []any{
								map[string]any{"name": "id", "type": "string"},
								map[string]any{"name": "value", "type": "bigint"},
							},
							"location": "s3://" + env.Bucket + "/databases/" + dbName + "/" + tableName,
						},
					},
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:       env.Ops,
						Operation: "get_table",
						Params: map[string]any{
							"database_name": dbName,
							"table_name":    tableName,
						},
						ExpectedKeys: []string{"description"},
					},
				},
				CleanUps: []testcase.Cleanup{
					cleanup.DeleteAWSResources{
						Ops:       env.Ops,
						DeleteAPI: "delete_table",
						Params: map[string]any{
							"database_name": dbName,
							"table_name":    tableName,
						},
					},
				},
			},
			{
				Name:         "delete_database",
				Tool:         "manage_aws_glue_databases",
				Dependencies: []string{"create_database", "create_table"},
				Input: map[string]any{
					"operation":     "delete-database",
					"database_name": dbName,
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:             env.Ops,
						Operation:       "get_database",
						Params:          map[string]any{"name": dbName, "database_name": dbName},
						ValidateAbsence: true,
					},
				},
			},
		},
	}
}

// GlueTriggers covers on-demand triggers attached to a job.
func GlueTriggers(env *Env) harness.Group {
	jobName := naming.Unique("mcp-test-trigger-job")
	triggerName := naming.Unique("mcp-test-trigger")

	return harness.Group{
		Name: "glue_triggers",
		Cases: []testcase.TestCase{
			{
				Name: "create_trigger_job",
				Tool: "manage_aws_glue_jobs",
				Input: map[string]any{
					"operation": "create-job",
					"job_name":  jobName,
					"job_definition": map[string]any{
						"role": env.RoleARN,
						"command": map[string]any{
							"name":            "glueetl",
							"script_location": env.ScriptLocation,
							"python_version":  "3",
						},
						"glue_version": "4.0",
					},
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:       env.Ops,
						Operation: "get_job",
						Params:    map[string]any{"job_name": jobName},
					},
				},
				CleanUps: []testcase.Cleanup{
					cleanup.DeleteAWSResources{
						Ops:       env.Ops,
						DeleteAPI: "delete_job",
						Params:    map[string]any{"job_name": jobName},
					},
				},
			},
			{
				Name:         "create_trigger",
				Tool:         "manage_aws_glue_triggers",
				Dependencies: []string{"create_trigger_job"},
				Input: map[string]any{
					"operation":    "create-trigger",
					"trigger_name": triggerName,
					"trigger_definition": map[string]any{
						"type": "ON_DEMAND",
						"actions": []any{
							map[string]any{"job_name": jobName},
						},
					},
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:       env.Ops,
						Operation: "get_trigger",
						Params:    map[string]any{"trigger_name": triggerName},
					},
				},
				CleanUps: []testcase.Cleanup{
					cleanup.DeleteAWSResources{
						Ops:       env.Ops,
						DeleteAPI: "delete_trigger",
						Params:    map[string]any{"trigger_name": triggerName},
					},
				},
			},
			{
				Name:         "delete_trigger",
				Tool:         "manage_aws_glue_triggers",
				Dependencies: []string{"create_trigger"},
				Input: map[string]any{
					"operation":    "delete-trigger",
					"trigger_name": triggerName,
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:             env.Ops,
						Operation:       "get_trigger",
						Params:          map[string]any{"trigger_name": triggerName},
						ValidateAbsence: true,
					},
				},
			},
		},
	}
}
