// Package execute wires the harness together: AWS clients, environment
// setup, the server subprocess, the runner, and result formatting.
package execute

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/awslabs/dataprocessing-mcp-harness/internal/awsenv"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/awsops"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/cases"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/config"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/exit"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/formatter/stdout"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/harness"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/mcpserver"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/naming"
	"github.com/awslabs/dataprocessing-mcp-harness/internal/ratelimit"
)

// Executor runs the full suite for one configuration.
type Executor struct {
	cfg *config.Config
}

// New creates an executor and configures logging.
func New(cfg *config.Config) *Executor {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return &Executor{cfg: cfg}
}

// Run provisions the environment, starts the server, executes the groups,
// and prints the summary. The return value is the process exit code.
func (e *Executor) Run(ctx context.Context) int {
	clients, err := awsops.NewClients(ctx, e.cfg.Profile, e.cfg.Region)
	if err != nil {
		return fail(err)
	}

	env, err := prepareEnvironment(ctx, clients)
	if err != nil {
		return fail(err)
	}

	server, err := mcpserver.Start(ctx, mcpserver.Options{
		Command:     e.cfg.ServerCommand,
		Args:        e.cfg.ServerArgs,
		Profile:     e.cfg.Profile,
		Region:      e.cfg.Region,
		CallTimeout: e.cfg.CallTimeout,
		Debug:       e.cfg.Debug,
	})
	if err != nil {
		return fail(err)
	}
	defer func() {
		if err := server.Close(); err != nil {
			logrus.WithError(err).Warn("failed to shut down MCP server")
		}
	}()

	groups := cases.Filter(cases.Groups(env), e.cfg.Groups)
	if len(groups) == 0 {
		return fail(fmt.Errorf("no fixture groups match %v", e.cfg.Groups))
	}

	runner := harness.NewRunner(server, ratelimit.New(e.cfg.RateLimit))
	summary := runner.Run(ctx, groups)

	if err := stdout.New().Format(summary); err != nil {
		return fail(err)
	}

	if summary.Failed() {
		return exit.CodeTestFailure
	}
	return exit.CodeOK
}

// prepareEnvironment provisions the bucket, role, script, and the decoy job
// the fixtures reference.
func prepareEnvironment(ctx context.Context, clients *awsops.Clients) (*cases.Env, error) {
	setup := &awsenv.Setup{Clients: clients}

	bucket, err := setup.EnsureBucket(ctx)
	if err != nil {
		return nil, err
	}

	roleARN, err := setup.EnsureGlueRole(ctx)
	if err != nil {
		return nil, err
	}

	scriptLocation, err := setup.UploadScript(ctx, bucket)
	if err != nil {
		return nil, err
	}

	nonMCPJobName := naming.Unique("non-mcp-test-job")
	if err := setup.CreateNonMCPJob(ctx, nonMCPJobName, roleARN, scriptLocation); err != nil {
		return nil, err
	}

	return &cases.Env{
		Ops:            clients,
		Bucket:         bucket,
		RoleARN:        roleARN,
		ScriptLocation: scriptLocation,
		NonMCPJobName:  nonMCPJobName,
	}, nil
}

func fail(err error) int {
	result := exit.Errorf("Error: %v\n", err)
	result.Print()
	return result.ExitCode
}
