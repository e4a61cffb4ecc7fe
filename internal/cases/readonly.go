package cases

import (
	"github.com/awslabs/dataprocessing-mcp-harness/internal/awsenv"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/harness"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/testcase"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/validate"
)

// IAMAndS3 covers the read-only support surfaces: role policies and bucket
// listing.
func IAMAndS3(env *Env) harness.Group {
	return harness.Group{
		Name: "iam_s3_readonly",
		Cases: []testcase.TestCase{
			{
				Name: "get_role_policies",
				Tool: "manage_aws_iam_roles",
				Input: map[string]any{
					"operation": "get-policies-for-role",
					"role_name": awsenv.GlueRoleName,
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: awsenv.GlueRoleName},
					validate.AWSResource{
						Ops:       env.Ops,
						Operation: "get_role",
						Params:    map[string]any{"role_name": awsenv.GlueRoleName},
					},
				},
			},
			{
				Name: "list_buckets",
				Tool: "list_s3_buckets",
				Input: map[string]any{
					"operation": "list-buckets",
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: env.Bucket},
				},
			},
		},
	}
}
