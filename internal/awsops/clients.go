// Package awsops bridges the harness's generic operation/parameter maps to
// the typed AWS SDK clients used to verify resources behind the MCP server.
package awsops

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/emr"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go/middleware"
)

// userAgentSuffix identifies harness traffic in CloudTrail, mirroring the
// server's own user-agent convention.
const userAgentSuffix = "awslabs/mcp/aws-dataprocessing-mcp-server-test-framework/"

// Invoker executes read/delete operations by their fixture-table names.
// *Clients is the production implementation; tests substitute fakes.
type Invoker interface {
	Invoke(ctx context.Context, operation string, params map[string]any) (map[string]any, error)
	Region() string
	AccountID(ctx context.Context) (string, error)
}

// Clients bundles the service clients the harness verifies resources with.
type Clients struct {
	Glue   *glue.Client
	Athena *athena.Client
	EMR    *emr.Client
	S3     *s3.Client
	IAM    *iam.Client
	STS    *sts.Client

	region string

	mu      sync.Mutex
	account string
}

// NewClients loads shared AWS configuration (honoring profile and region
// when non-empty) and builds the service clients.
func NewClients(ctx context.Context, profile, region string) (*Clients, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithAPIOptions([]func(*middleware.Stack) error{
			awsmiddleware.AddUserAgentKey(userAgentSuffix),
		}),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return NewClientsFromConfig(cfg), nil
}

// NewClientsFromConfig builds the client bundle from an already-resolved
// AWS configuration.
func NewClientsFromConfig(cfg aws.Config) *Clients {
	return &Clients{
		Glue:   glue.NewFromConfig(cfg),
		Athena: athena.NewFromConfig(cfg),
		EMR:    emr.NewFromConfig(cfg),
		S3:     s3.NewFromConfig(cfg),
		IAM:    iam.NewFromConfig(cfg),
		STS:    sts.NewFromConfig(cfg),
		region: cfg.Region,
	}
}

// Region returns the resolved AWS region.
func (c *Clients) Region() string {
	return c.region
}

// AccountID returns the caller's account ID, fetched once via STS and
// cached for the lifetime of the bundle.
func (c *Clients) AccountID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.account != "" {
		return c.account, nil
	}

	out, err := c.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	c.account = aws.ToString(out.Account)
	return c.account, nil
}
