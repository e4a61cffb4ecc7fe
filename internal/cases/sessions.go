package cases

import (
	"github.com/awslabs/dataprocessing-mcp-harness/internal/cleanup"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/harness"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/naming"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/testcase"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/validate"
)

// GlueSessions covers the interactive session lifecycle. Sessions provision
// asynchronously, so teardown waits for the session to leave PROVISIONING
// before delete_session is attempted.
func GlueSessions(env *Env) harness.Group {
	sessionID := naming.Unique("mcp-test-session")

	return harness.Group{
		Name: "glue_sessions",
		Cases: []testcase.TestCase{
			{
				Name: "create_session",
				Tool: "manage_aws_glue_sessions",
				Input: map[string]any{
					"operation":  "create-session",
					"session_id": sessionID,
					"role":       env.RoleARN,
					"command": map[string]any{
						"name":           "glueetl",
						"python_version": "3",
					},
					"glue_version": "4.0",
					"idle_timeout": 5,
				},
				Validators: []testcase.Validator{
					validate.AWSResource{
						Ops:       env.Ops,
						Operation: "get_session",
						Params:    map[string]any{"session_id": sessionID},
					},
				},
				CleanUps: []testcase.Cleanup{
					cleanup.DeleteAWSResources{
						Ops:            env.Ops,
						DeleteAPI:      "delete_session",
						Params:         map[string]any{},
						ResourceField:  "session_id",
						TargetParamKey: "session_id",
					},
				},
			},
			{
				Name:         "get_session",
				Tool:         "manage_aws_glue_sessions",
				Dependencies: []string{"create_session"},
				Input: map[string]any{
					"operation":  "get-session",
					"session_id": sessionID,
				},
				Validators: []testcase.Validator{
					validate.ContainsText{Expected: sessionID},
				},
			},
		},
	}
}
