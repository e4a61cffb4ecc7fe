package cases

import (
	"github.com/awslabs/dataprocessing-mcp-harness/internal/cleanup"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/harness"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/naming"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/testcase"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/validate"
)

// EMRClusters covers cluster creation with an injected describe check, the
// missing-parameter error path, and listing.
func EMRClusters(env *Env) harness.Group {
	clusterName := naming.Unique("mcp-test-cluster")

	return harness.Group{
		Name: "emr_clusters",
		Cases: []testcase.TestCase{
			{
				Name: "create_cluster",
				Tool: "manage_aws_emr_clusters",
				Input: map[string]any{
					"operation":     "create-cluster",
					"name":          clusterName,
					"release_label": "emr-7.2.0",
					"applications":  []any{"Spark"},
					"instances": map[string]any{
						"master_instance_type":              "m5.xlarge",
						"slave_instance_type":               "m5.xlarge",
						"instance_count":                    2,
						"keep_job_flow_alive_when_no_steps": true,
					},
					"log_uri": "s3://" + env.Bucket + "/emr-logs/",
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: "Successfully"},
					validate.AWSResource{
						Ops:       env.Ops,
						Operation: "describe_cluster",
						Params:    map[string]any{},
						Injectable: map[string]string{
							"cluster_id": "{{create_cluster.result.content[0].text.cluster_id}}",
						},
						ExpectedKeys: []string{"name", "release_label"},
					},
				},
				CleanUps: []testcase.Cleanup{
					cleanup.DeleteAWSResources{
						Ops:            env.Ops,
						DeleteAPI:      "terminate_job_flows",
						Params:         map[string]any{},
						ResourceField:  "cluster_id",
						TargetParamKey: "JobFlowIds",
						ParamIsList:    true,
					},
				},
			},
			{
				Name: "create_cluster_missing_params",
				Tool: "manage_aws_emr_clusters",
				Input: map[string]any{
					"operation": "create-cluster",
					"name":      naming.Unique("mcp-test-incomplete"),
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: "release_label"},
				},
			},
			{
				Name:         "list_clusters",
				Tool:         "manage_aws_emr_clusters",
				Dependencies: []string{"create_cluster"},
				Input: map[string]any{
					"operation": "list-clusters",
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: clusterName},
				},
			},
		},
	}
}

// EMRSecurityConfigurations covers the security configuration lifecycle.
func EMRSecurityConfigurations(env *Env) harness.Group {
	secName := naming.Unique("mcp-test-security-config")

	securityConfiguration := map[string]any{
		"EncryptionConfiguration": map[string]any{
			"EnableInTransitEncryption": false,
			"EnableAtRestEncryption":    true,
			"AtRestEncryptionConfiguration": map[string]any{
				"S3EncryptionConfiguration": map[string]any{
					"EncryptionMode": "SSE-S3",
				},
			},
		},
	}

	return harness.Group{
		Name: "emr_security_configurations",
		Cases: []testcase.TestCase{
			{
				Name: "create_security_configuration",
				Tool: "manage_aws_emr_security_configurations",
				Input: map[string]any{
					"operation":              "create-security-configuration",
					"name":                   secName,
					"security_configuration": securityConfiguration,
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:          env.Ops,
						Operation:    "describe_security_configuration",
						Params:       map[string]any{"name": secName},
						ExpectedKeys: []string{"name"},
					},
				},
				CleanUps: []testcase.Cleanup{
					cleanup.DeleteAWSResources{
						Ops:       env.Ops,
						DeleteAPI: "delete_security_configuration",
						Params:    map[string]any{"name": secName},
					},
				},
			},
			{
				Name:         "delete_security_configuration",
				Tool:         "manage_aws_emr_security_configurations",
				Dependencies: []string{"create_security_configuration"},
				Input: map[string]any{
					"operation": "delete-security-configuration",
					"name":      secName,
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:             env.Ops,
						Operation:       "describe_security_configuration",
						Params:          map[string]any{"name": secName},
						ValidateAbsence: true,
					},
				},
			},
		},
	}
}
