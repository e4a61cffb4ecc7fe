// Package inject resolves {{dep_name.path}} templates against the responses
// of earlier cases, so later fixtures can reference server-assigned
// identifiers.
package inject

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/awslabs/dataprocessing-mcp-harness/internal/extract"
)

var pattern = regexp.MustCompile(`\{\{(.+?)\}\}`)

// Resolve substitutes every {{dep_name.path}} in template. A template that
// is a single injection yields the extracted value with its original type;
// mixed templates interpolate as text.
func Resolve(template string, responses map[string]map[string]any) (any, error) {
	matches := pattern.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		return template, nil
	}

	if len(matches) == 1 && matches[0][0] == 0 && matches[0][1] == len(template) {
		return lookup(template[matches[0][2]:matches[0][3]], responses)
	}

	var resolveErr error
	resolved := pattern.ReplaceAllStringFunc(template, func(m string) string {
		ref := pattern.FindStringSubmatch(m)[1]
		val, err := lookup(ref, responses)
		if err != nil {
			resolveErr = err
			return m
		}
		return fmt.Sprintf("%v", val)
	})
	if resolveErr != nil {
		return nil, resolveErr
	}
	return resolved, nil
}

// Params resolves templates in every string value of params, recursing into
// nested maps and lists. The input is not mutated.
func Params(params map[string]any, responses map[string]map[string]any) (map[string]any, error) {
	resolved, err := resolveValue(params, responses)
	if err != nil {
		return nil, err
	}
	return resolved.(map[string]any), nil
}

func resolveValue(value any, responses map[string]map[string]any) (any, error) {
	switch v := value.(type) {
	case string:
		return Resolve(v, responses)
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			resolved, err := resolveValue(item, responses)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			resolved, err := resolveValue(item, responses)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return value, nil
	}
}

func lookup(ref string, responses map[string]map[string]any) (any, error) {
	depName, path, found := strings.Cut(ref, ".")
	if !found {
		return nil, fmt.Errorf("injection %q has no path", ref)
	}

	dep, ok := responses[depName]
	if !ok {
		return nil, fmt.Errorf("no response recorded for dependency %q", depName)
	}

	return extract.Extract(dep, path)
}
