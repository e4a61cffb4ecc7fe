// Package awsenv provisions the AWS prerequisites fixture cases assume: the
// integration-test bucket, the Glue service role, the test script in S3, and
// a Glue job created outside the server for negative tag checks.
package awsenv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	gluetypes "github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"

	"github.com/awslabs/dataprocessing-mcp-harness/internal/awsops"
)

// GlueRoleName is the service role the fixtures hand to Glue jobs and
// sessions.
const GlueRoleName = "test-mcp-glue-role"

const glueManagedPolicyARN = "arn:aws:iam::aws:policy/service-role/AWSGlueServiceRole"

// ScriptKey is where the canned Glue test script lives in the bucket.
const ScriptKey = "integration-test/scripts/test_script.py"

const glueAssumeRolePolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"Service": "glue.amazonaws.com"},
      "Action": "sts:AssumeRole"
    }
  ]
}`

const testScript = `import sys
from awsglue.utils import getResolvedOptions

args = getResolvedOptions(sys.argv, ["JOB_NAME"])
print(f"integration test job {args['JOB_NAME']} ran")
`

// BucketName returns the per-account integration-test bucket name.
func BucketName(account, region string) string {
	return fmt.Sprintf("dataprocessing-%s-%s-integration-test", account, region)
}

// Setup provisions shared AWS state before groups run.
type Setup struct {
	Clients *awsops.Clients
}

// EnsureBucket creates the integration-test bucket if it does not exist and
// returns its name.
func (s *Setup) EnsureBucket(ctx context.Context) (string, error) {
	account, err := s.Clients.AccountID(ctx)
	if err != nil {
		return "", err
	}

	bucket := BucketName(account, s.Clients.Region())

	_, err = s.Clients.S3.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		logrus.WithField("bucket", bucket).Debug("integration-test bucket exists")
		return bucket, nil
	}
	if !awsops.IsNotFound(err) {
		return "", fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	if region := s.Clients.Region(); region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(region),
		}
	}

	if _, err := s.Clients.S3.CreateBucket(ctx, input); err != nil {
		return "", fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}

	logrus.WithField("bucket", bucket).Info("created integration-test bucket")
	return bucket, nil
}

// EnsureGlueRole gets or creates the Glue service role and returns its ARN.
// An existing role is checked for the managed Glue policy so stale roles
// fail fast instead of producing opaque job failures later.
func (s *Setup) EnsureGlueRole(ctx context.Context) (string, error) {
	out, err := s.Clients.IAM.GetRole(ctx, &iam.GetRoleInput{
		RoleName: aws.String(GlueRoleName),
	})
	if err == nil {
		if err := s.checkRolePolicies(ctx); err != nil {
			return "", err
		}
		return aws.ToString(out.Role.Arn), nil
	}
	if !awsops.IsNotFound(err) {
		return "", fmt.Errorf("failed to look up role %s: %w", GlueRoleName, err)
	}

	created, err := s.Clients.IAM.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(GlueRoleName),
		AssumeRolePolicyDocument: aws.String(glueAssumeRolePolicy),
		Description:              aws.String("Service role for dataprocessing MCP integration tests"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create role %s: %w", GlueRoleName, err)
	}

	_, err = s.Clients.IAM.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
		RoleName:  aws.String(GlueRoleName),
		PolicyArn: aws.String(glueManagedPolicyARN),
	})
	if err != nil {
		return "", fmt.Errorf("failed to attach Glue policy to %s: %w", GlueRoleName, err)
	}

	logrus.WithField("role", GlueRoleName).Info("created Glue service role")
	return aws.ToString(created.Role.Arn), nil
}

func (s *Setup) checkRolePolicies(ctx context.Context) error {
	out, err := s.Clients.IAM.ListAttachedRolePolicies(ctx, &iam.ListAttachedRolePoliciesInput{
		RoleName: aws.String(GlueRoleName),
	})
	if err != nil {
		return fmt.Errorf("failed to list policies of %s: %w", GlueRoleName, err)
	}

	for _, policy := range out.AttachedPolicies {
		if aws.ToString(policy.PolicyArn) == glueManagedPolicyARN {
			return nil
		}
	}
	return fmt.Errorf("role %s exists but lacks the Glue service policy", GlueRoleName)
}

// UploadScript puts the canned Glue test script into the bucket and returns
// its s3:// location.
func (s *Setup) UploadScript(ctx context.Context, bucket string) (string, error) {
	_, err := s.Clients.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(ScriptKey),
		Body:   strings.NewReader(testScript),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload test script: %w", err)
	}

	location := fmt.Sprintf("s3://%s/%s", bucket, ScriptKey)
	logrus.WithField("script", location).Debug("uploaded Glue test script")
	return location, nil
}

// CreateNonMCPJob creates a Glue job directly, without the server's
// management tags. Fixtures use it to prove the server refuses to modify
// resources it does not manage.
func (s *Setup) CreateNonMCPJob(ctx context.Context, name, roleARN, scriptLocation string) error {
	_, err := s.Clients.Glue.CreateJob(ctx, &glue.CreateJobInput{
		Name: aws.String(name),
		Role: aws.String(roleARN),
		Command: &gluetypes.JobCommand{
			Name:           aws.String("glueetl"),
			ScriptLocation: aws.String(scriptLocation),
			PythonVersion:  aws.String("3"),
		},
		GlueVersion:     aws.String("4.0"),
		NumberOfWorkers: aws.Int32(2),
		WorkerType:      gluetypes.WorkerType("G.1X"),
	})
	if err != nil {
		var exists *gluetypes.AlreadyExistsException
		if errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("failed to create non-MCP job %s: %w", name, err)
	}

	logrus.WithField("job", name).Info("created non-MCP-managed Glue job")
	return nil
}
