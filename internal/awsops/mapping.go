package awsops

import "strings"

// ParameterMapping converts the snake_case parameter names used in fixture
// tables to the field names the AWS SDK expects. Entries that do not follow
// plain CamelCase conversion (get_table wants Name, sessions use Id) are the
// reason this is a table rather than a rule.
var ParameterMapping = map[string]string{
	"job_name":               "JobName",
	"database_name":          "DatabaseName",
	"job_definition":         "JobDefinition",
	"table_name":             "Name", // get_table addresses tables by Name
	"cluster_id":             "ClusterId",
	"step_id":                "StepId",
	"policy_name":            "PolicyName",
	"location_uri":           "LocationUri",
	"role_name":              "RoleName",
	"release_label":          "ReleaseLabel",
	"step_concurrency_level": "StepConcurrencyLevel",
	"termination_protected":  "TerminationProtected",
	"encryption_at_rest":     "EncryptionAtRest",
	"code_content":           "Body",
	"crawler_name":           "Name",
	"trigger_name":           "Name",
	"session_id":             "Id",
	"run_id":                 "RunId",
	"description":            "Description",
	"command":                "Command",
	"classifier_name":        "Name",
	"profile_name":           "Name",
	"configuration":          "Configuration",
	"name":                   "Name",
	"work_group":             "WorkGroup",
	"named_query_id":         "NamedQueryId",
}

// arnSpec describes how to build the resource part of an ARN for a read
// operation: the resource type plus the tool parameter(s), slash-joined,
// that identify the instance.
type arnSpec struct {
	ResourceType string
	ParamKey     string
}

// OperationARNMap drives management-tag lookups for resources addressed by
// ARN.
var OperationARNMap = map[string]arnSpec{
	"get_job":           {"job", "job_name"},
	"get_database":      {"database", "database_name"},
	"get_table":         {"table", "database_name/table_name"},
	"get_connection":    {"connection", "connection_name"},
	"get_work_group":    {"workgroup", "name"},
	"get_data_catalog":  {"datacatalog", "name"},
	"get_partition":     {"partition", "database_name/table_name/partition_values"},
	"get_session":       {"session", "session_id"},
	"get_crawler":       {"crawler", "crawler_name"},
	"get_trigger":       {"trigger", "trigger_name"},
	"get_workflow":      {"workflow", "workflow_name"},
	"get_classifier":    {"classifier", "classifier_name"},
	"get_usage_profile": {"usage-profile", "profile_name"},
}

// prefixSpec pairs the tool-input sub-object holding the expected values
// with the response sub-object holding the actual values for one read
// operation. An empty string means "compare at the top level".
type prefixSpec struct {
	InputKey    string
	ResponseKey string
}

// OperationPrefixMap aligns tool inputs with API response envelopes during
// expected-key comparison.
var OperationPrefixMap = map[string]prefixSpec{
	"get_job":                              {"job_definition", "Job"},
	"get_database":                         {"", "Database"},
	"get_table":                            {"table_input", "Table"},
	"list_role_policies":                   {"", ""},
	"get_role":                             {"", "Role"},
	"describe_cluster":                     {"", "Cluster"},
	"get_data_catalog_encryption_settings": {"", "DataCatalogEncryptionSettings"},
	"get_object":                           {"", ""},
	"get_crawler":                          {"crawler_definition", "Crawler"},
	"get_data_catalog":                     {"", "DataCatalog"},
	"get_work_group":                       {"", "WorkGroup"},
	"get_session":                          {"", "Session"},
	"get_classifier":                       {"classifier_definition", "Classifier"},
	"get_usage_profile":                    {"", "UsageProfile"},
	"get_named_query":                      {"", "NamedQuery"},
}

// SkipTagCheckOperations lists read operations whose resources are not
// tagged by the server, so the management-tag check does not apply.
var SkipTagCheckOperations = map[string]struct{}{
	"describe_step":                        {},
	"list_role_policies":                   {},
	"get_role_policy":                      {},
	"get_role":                             {},
	"get_partition":                        {},
	"list_instance_groups":                 {},
	"list_instance_fleets":                 {},
	"get_data_catalog_encryption_settings": {},
	"get_object":                           {},
	"get_workflow_run":                     {},
	"get_classifier":                       {},
	"get_usage_profile":                    {},
	"get_security_configuration":           {},
	"get_named_query":                      {},
}

// NormalizeParams rewrites snake_case keys using ParameterMapping. Keys
// without a mapping entry pass through unchanged.
func NormalizeParams(params map[string]any) map[string]any {
	normalized := make(map[string]any, len(params))
	for k, v := range params {
		if mapped, ok := ParameterMapping[k]; ok {
			normalized[mapped] = v
		} else {
			normalized[k] = v
		}
	}
	return normalized
}

// CamelCase converts a snake_case identifier to CamelCase. Keys that are not
// snake_case pass through unchanged, so callers can mix fixture-style and
// SDK-style parameter maps.
func CamelCase(key string) string {
	if !strings.Contains(key, "_") || strings.ToLower(key) != key {
		return key
	}

	parts := strings.Split(key, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}

// CamelCaseParams applies CamelCase to every key of params.
func CamelCaseParams(params map[string]any) map[string]any {
	converted := make(map[string]any, len(params))
	for k, v := range params {
		converted[CamelCase(k)] = v
	}
	return converted
}
