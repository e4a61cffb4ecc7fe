// Package naming generates the resource names used by fixture tables.
package naming

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Unique appends a short random suffix to prefix so fixture resources from
// concurrent or aborted runs never collide in a shared account.
func Unique(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8])
}

// UniqueUnderscored is Unique for identifiers that must be valid Glue/Athena
// database-style names, which reject hyphens.
func UniqueUnderscored(prefix string) string {
	return strings.ReplaceAll(Unique(prefix), "-", "_")
}
