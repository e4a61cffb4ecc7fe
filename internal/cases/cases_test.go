package cases

import (
	"strings"
	"testing"

	"github.com/awslabs/dataprocessing-mcp-harness/internal/awsops"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/cleanup"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/validate"
)

func testEnv() *Env {
	return &Env{
		Bucket:         "dataprocessing-123456789012-eu-west-1-integration-test",
		RoleARN:        "arn:aws:iam::123456789012:role/test-mcp-glue-role",
		ScriptLocation: "s3://dataprocessing-123456789012-eu-west-1-integration-test/integration-test/scripts/test_script.py",
		NonMCPJobName:  "non-mcp-test-job",
	}
}

func TestGroupsAreWellFormed(t *testing.T) {
	groups := Groups(testEnv())
	if len(groups) == 0 {
		t.Fatal("Groups() returned nothing")
	}

	seenGroups := map[string]struct{}{}
	for _, group := range groups {
		if _, dup := seenGroups[group.Name]; dup {
			t.Errorf("duplicate group name %q", group.Name)
		}
		seenGroups[group.Name] = struct{}{}

		seenCases := map[string]struct{}{}
		for _, tc := range group.Cases {
			if tc.Name == "" || tc.Tool == "" {
				t.Errorf("group %s has a case without name or tool: %+v", group.Name, tc)
			}
			if _, dup := seenCases[tc.Name]; dup {
				t.Errorf("group %s has duplicate case %q", group.Name, tc.Name)
			}

			// Dependencies must name earlier cases in the same group.
			for _, dep := range tc.Dependencies {
				if _, ok := seenCases[dep]; !ok {
					t.Errorf("group %s case %s depends on unknown or later case %q", group.Name, tc.Name, dep)
				}
			}
			seenCases[tc.Name] = struct{}{}

			if op, ok := tc.Input["operation"]; !ok || op == "" {
				t.Errorf("group %s case %s has no operation in its input", group.Name, tc.Name)
			}
		}
	}
}

// GetDatabase and DeleteDatabase address the database through the Name
// field, so every database fixture must yield Name after normalization.
func TestDatabaseCasesAddressDatabaseByName(t *testing.T) {
	group := GlueDatabases(testEnv())

	for _, tc := range group.Cases {
		for _, v := range tc.Validators {
			aws, ok := v.(validate.AWSResource)
			if !ok || aws.Operation != "get_database" {
				continue
			}
			params := awsops.NormalizeParams(aws.Params)
			if name, _ := params["Name"].(string); name == "" {
				t.Errorf("case %s: get_database params missing Name: %+v", tc.Name, params)
			}
		}
		for _, c := range tc.CleanUps {
			del, ok := c.(cleanup.DeleteAWSResources)
			if !ok || del.DeleteAPI != "delete_database" {
				continue
			}
			params := awsops.NormalizeParams(del.Params)
			if name, _ := params["Name"].(string); name == "" {
				t.Errorf("case %s: delete_database params missing Name: %+v", tc.Name, params)
			}
		}
	}
}

func TestGlueSessionsTearDownThroughDeleteSession(t *testing.T) {
	group := GlueSessions(testEnv())
	if group.Name != "glue_sessions" {
		t.Fatalf("group name = %q, want glue_sessions", group.Name)
	}

	create := group.Cases[0]
	if create.Name != "create_session" {
		t.Fatalf("first case = %q, want create_session", create.Name)
	}

	del, ok := create.CleanUps[0].(cleanup.DeleteAWSResources)
	if !ok {
		t.Fatalf("create_session cleanup is %T", create.CleanUps[0])
	}
	if del.DeleteAPI != "delete_session" || del.ResourceField != "session_id" {
		t.Errorf("cleanup = %+v, want delete_session keyed on session_id", del)
	}
}

func TestRunJobStopsItsRunOnCleanup(t *testing.T) {
	group := GlueJobs(testEnv())

	for _, tc := range group.Cases {
		if tc.Name != "run_job" {
			continue
		}

		del, ok := tc.CleanUps[0].(cleanup.DeleteAWSResources)
		if !ok {
			t.Fatalf("run_job cleanup is %T", tc.CleanUps[0])
		}
		if del.DeleteAPI != "batch_stop_job_run" || !del.ParamIsList {
			t.Errorf("cleanup = %+v, want batch_stop_job_run with a list param", del)
		}
		if del.ResourceField != "job_run_id" || del.TargetParamKey != "JobRunIds" {
			t.Errorf("cleanup maps %q to %q, want job_run_id to JobRunIds", del.ResourceField, del.TargetParamKey)
		}
		return
	}
	t.Fatal("glue_jobs has no run_job case")
}

func TestResourceNamesAreUniquePerInvocation(t *testing.T) {
	env := testEnv()
	first := GlueJobs(env)
	second := GlueJobs(env)

	a, _ := first.Cases[0].Input["job_name"].(string)
	b, _ := second.Cases[0].Input["job_name"].(string)
	if a == "" || a == b {
		t.Errorf("job names not unique across invocations: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "mcp-test-job-") {
		t.Errorf("job name %q missing expected prefix", a)
	}
}

func TestFilter(t *testing.T) {
	groups := Groups(testEnv())

	filtered := Filter(groups, []string{"glue_jobs", "emr_clusters"})
	if len(filtered) != 2 {
		t.Fatalf("Filter() kept %d groups, want 2", len(filtered))
	}
	if filtered[0].Name != "glue_jobs" || filtered[1].Name != "emr_clusters" {
		t.Errorf("Filter() kept %q and %q", filtered[0].Name, filtered[1].Name)
	}

	if got := Filter(groups, nil); len(got) != len(groups) {
		t.Errorf("empty filter should keep all groups, kept %d of %d", len(got), len(groups))
	}
}
