package awsops

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoARNSpec indicates an operation with no entry in OperationARNMap.
var ErrNoARNSpec = errors.New("awsops: no ARN construction rule for operation")

// ResourceARN builds the ARN of the resource a read operation addresses,
// using the tool parameters the fixture passed to the server. S3 resources
// are not addressed by ARN in the tag APIs, so service "s3" yields "".
func ResourceARN(operation, service, region, account string, toolParams map[string]any) (string, error) {
	if service == "s3" {
		return "", nil
	}

	spec, ok := OperationARNMap[operation]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoARNSpec, operation)
	}

	var parts []string
	for _, key := range strings.Split(spec.ParamKey, "/") {
		val, ok := toolParams[key]
		if !ok || val == nil {
			return "", fmt.Errorf("awsops: missing resource identifier %q for operation %q", key, operation)
		}

		switch v := val.(type) {
		case []any:
			for _, item := range v {
				parts = append(parts, fmt.Sprintf("%v", item))
			}
		default:
			parts = append(parts, fmt.Sprintf("%v", v))
		}
	}

	resourceID := strings.Join(parts, "/")
	if resourceID == "" {
		return "", fmt.Errorf("awsops: empty resource identifier %q for operation %q", spec.ParamKey, operation)
	}

	return fmt.Sprintf("arn:aws:%s:%s:%s:%s/%s", service, region, account, spec.ResourceType, resourceID), nil
}
