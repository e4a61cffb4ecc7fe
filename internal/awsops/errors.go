package awsops

import (
	"errors"

	"github.com/aws/smithy-go"
)

// IsNotFound reports whether err is an API error meaning the addressed
// resource does not exist. Athena signals missing workgroups with
// InvalidRequestException rather than a NotFound code.
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.ErrorCode() {
	case "EntityNotFoundException",
		"ResourceNotFoundException",
		"InvalidRequestException",
		"NotFoundException",
		"NotFound",
		"NoSuchEntity",
		"NoSuchBucket":
		return true
	}
	return false
}
