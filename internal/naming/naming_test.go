package naming

import (
	"strings"
	"testing"
)

func TestUnique(t *testing.T) {
	first := Unique("mcp-test-job")
	second := Unique("mcp-test-job")

	if !strings.HasPrefix(first, "mcp-test-job-") {
		t.Errorf("Unique() = %q, want mcp-test-job- prefix", first)
	}
	if first == second {
		t.Errorf("Unique() returned duplicate name %q", first)
	}
}

func TestUniqueUnderscored(t *testing.T) {
	name := UniqueUnderscored("mcp_test_database")

	if strings.Contains(name, "-") {
		t.Errorf("UniqueUnderscored() = %q, contains hyphen", name)
	}
	if !strings.HasPrefix(name, "mcp_test_database_") {
		t.Errorf("UniqueUnderscored() = %q, want mcp_test_database_ prefix", name)
	}
}
