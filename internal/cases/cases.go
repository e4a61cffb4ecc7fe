// Package cases holds the fixture tables: the tool invocations, checks, and
// teardown the harness runs against the server, grouped per resource kind.
package cases

import (
	"github.com/awslabs/dataprocessing-mcp-harness/internal/awsops"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/harness"
)

// Env carries the shared AWS state fixture constructors reference.
type Env struct {
	Ops awsops.Invoker

	// Bucket, RoleARN, and ScriptLocation come from the environment setup.
	Bucket         string
	RoleARN        string
	ScriptLocation string

	// NonMCPJobName is a Glue job created outside the server, used to prove
	// the server refuses to modify unmanaged resources.
	NonMCPJobName string
}

// Groups returns every fixture group in execution order.
func Groups(env *Env) []harness.Group {
	return []harness.Group{
		GlueJobs(env),
		GlueDatabases(env),
		GlueTriggers(env),
		GlueSessions(env),
		AthenaWorkGroups(env),
		AthenaNamedQueries(env),
		EMRClusters(env),
		EMRSecurityConfigurations(env),
		IAMAndS3(env),
	}
}

// Filter keeps only the named groups. An empty filter keeps everything.
func Filter(groups []harness.Group, names []string) []harness.Group {
	if len(names) == 0 {
		return groups
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	var filtered []harness.Group
	for _, group := range groups {
		if _, ok := wanted[group.Name]; ok {
			filtered = append(filtered, group)
		}
	}
	return filtered
}
