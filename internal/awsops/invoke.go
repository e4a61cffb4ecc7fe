package awsops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownOperation indicates an operation name with no registry entry.
var ErrUnknownOperation = errors.New("awsops: unknown operation")

// operationServices maps operation names to the owning service, used for
// ARN construction and tag-API selection.
var operationServices = map[string]string{
	"get_job":                         "glue",
	"delete_job":                      "glue",
	"get_job_run":                     "glue",
	"batch_stop_job_run":              "glue",
	"get_database":                    "glue",
	"delete_database":                 "glue",
	"get_table":                       "glue",
	"delete_table":                    "glue",
	"get_trigger":                     "glue",
	"delete_trigger":                  "glue",
	"get_session":                     "glue",
	"delete_session":                  "glue",
	"get_tags":                        "glue",
	"get_work_group":                  "athena",
	"delete_work_group":               "athena",
	"get_named_query":                 "athena",
	"delete_named_query":              "athena",
	"list_tags_for_resource":          "athena",
	"describe_cluster":                "emr",
	"describe_step":                   "emr",
	"terminate_job_flows":             "emr",
	"describe_security_configuration": "emr",
	"delete_security_configuration":   "emr",
	"get_role":                        "iam",
	"list_role_policies":              "iam",
	"get_caller_identity":             "sts",
}

// ServiceFor returns the AWS service owning operation, or "" if unknown.
func ServiceFor(operation string) string {
	return operationServices[operation]
}

// Invoke dispatches an operation by its fixture-table name. Parameters and
// results cross the boundary as generic maps; the JSON round-trip relies on
// the SDK's exported field names matching the SDK-case parameter keys.
func (c *Clients) Invoke(ctx context.Context, operation string, params map[string]any) (map[string]any, error) {
	switch operation {
	// Glue
	case "get_job":
		return call(ctx, params, c.Glue.GetJob)
	case "delete_job":
		return call(ctx, params, c.Glue.DeleteJob)
	case "get_job_run":
		return call(ctx, params, c.Glue.GetJobRun)
	case "batch_stop_job_run":
		return call(ctx, params, c.Glue.BatchStopJobRun)
	case "get_database":
		return call(ctx, params, c.Glue.GetDatabase)
	case "delete_database":
		return call(ctx, params, c.Glue.DeleteDatabase)
	case "get_table":
		return call(ctx, params, c.Glue.GetTable)
	case "delete_table":
		return call(ctx, params, c.Glue.DeleteTable)
	case "get_trigger":
		return call(ctx, params, c.Glue.GetTrigger)
	case "delete_trigger":
		return call(ctx, params, c.Glue.DeleteTrigger)
	case "get_session":
		return call(ctx, params, c.Glue.GetSession)
	case "delete_session":
		return call(ctx, params, c.Glue.DeleteSession)
	case "get_tags":
		return call(ctx, params, c.Glue.GetTags)

	// Athena
	case "get_work_group":
		return call(ctx, params, c.Athena.GetWorkGroup)
	case "delete_work_group":
		return call(ctx, params, c.Athena.DeleteWorkGroup)
	case "get_named_query":
		return call(ctx, params, c.Athena.GetNamedQuery)
	case "delete_named_query":
		return call(ctx, params, c.Athena.DeleteNamedQuery)
	case "list_tags_for_resource":
		return call(ctx, params, c.Athena.ListTagsForResource)

	// EMR
	case "describe_cluster":
		return call(ctx, params, c.EMR.DescribeCluster)
	case "describe_step":
		return call(ctx, params, c.EMR.DescribeStep)
	case "terminate_job_flows":
		return call(ctx, params, c.EMR.TerminateJobFlows)
	case "describe_security_configuration":
		return call(ctx, params, c.EMR.DescribeSecurityConfiguration)
	case "delete_security_configuration":
		return call(ctx, params, c.EMR.DeleteSecurityConfiguration)

	// IAM
	case "get_role":
		return call(ctx, params, c.IAM.GetRole)
	case "list_role_policies":
		return call(ctx, params, c.IAM.ListRolePolicies)

	// STS
	case "get_caller_identity":
		return call(ctx, params, c.STS.GetCallerIdentity)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, operation)
	}
}

// call decodes params into the operation's input type, invokes it, and
// encodes the output back into a generic map.
func call[In, Out any, Opt any](ctx context.Context, params map[string]any, fn func(context.Context, *In, ...func(*Opt)) (*Out, error)) (map[string]any, error) {
	var input In
	if err := decode(params, &input); err != nil {
		return nil, fmt.Errorf("awsops: invalid parameters for %T: %w", input, err)
	}

	output, err := fn(ctx, &input)
	if err != nil {
		return nil, err
	}

	return encode(output)
}

func decode(params map[string]any, v any) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func encode(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("awsops: failed to encode response: %w", err)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("awsops: failed to decode response: %w", err)
	}

	delete(out, "ResultMetadata")
	return out, nil
}
