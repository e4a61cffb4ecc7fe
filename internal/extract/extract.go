// Package extract resolves dot/bracket path expressions against the nested
// value graphs produced by decoding MCP tool responses and AWS API payloads.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrTypeMismatch indicates an index token was applied to a non-array value.
	ErrTypeMismatch = errors.New("extract: type mismatch")

	// ErrIndexOutOfRange indicates an index token is out of bounds for the array.
	ErrIndexOutOfRange = errors.New("extract: index out of range")

	// ErrMalformedJSON indicates a string value had to be re-parsed as JSON
	// before key traversal and the parse failed.
	ErrMalformedJSON = errors.New("extract: malformed JSON string")

	// ErrKeyNotFound indicates a field token's key is absent, or the current
	// value is not an object at all.
	ErrKeyNotFound = errors.New("extract: key not found")
)

// tokenPattern matches path tokens left to right: either a run of word
// characters (a field) or a bracketed integer (an index). Separators and
// anything else are dropped. Fixture paths rely on this leniency, so it is
// intentionally not strict about stray characters.
var tokenPattern = regexp.MustCompile(`\w+|\[\d+\]`)

// Extract resolves path against root and returns the value it addresses.
//
// Paths look like "result.content[0].text.cluster_id". Field tokens index
// into objects; bracketed integers index into arrays. When a field token
// lands on a string, the string is first decoded as JSON so that payloads
// embedding serialized envelopes can be traversed transparently. An empty
// path returns root unchanged.
//
// Extract never mutates root and keeps no state between calls.
func Extract(root any, path string) (any, error) {
	value := root

	for _, token := range tokenPattern.FindAllString(path, -1) {
		if token[0] == '[' {
			list, ok := value.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: expected array at %s, got %T", ErrTypeMismatch, token, value)
			}

			// Indexes beyond the int range can never address an element.
			index, err := strconv.Atoi(token[1 : len(token)-1])
			if err != nil || index >= len(list) {
				return nil, fmt.Errorf("%w: index %s, array length %d", ErrIndexOutOfRange, token, len(list))
			}
			value = list[index]
			continue
		}

		if s, ok := value.(string); ok {
			var parsed any
			if err := json.Unmarshal([]byte(s), &parsed); err != nil {
				return nil, fmt.Errorf("%w: at %q", ErrMalformedJSON, token)
			}
			value = parsed
		}

		obj, ok := value.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q in %v", ErrKeyNotFound, token, value)
		}
		next, ok := obj[token]
		if !ok {
			return nil, fmt.Errorf("%w: %q in %v", ErrKeyNotFound, token, value)
		}
		value = next
	}

	return value, nil
}
