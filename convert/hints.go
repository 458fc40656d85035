package convert

import (
	"strings"

	"github.com/confmorph/confmorph/format"
)

// hintRule pairs a substring of a library error message with a one-sentence
// hint. First match wins, so specific patterns come before broad ones.
type hintRule struct {
	substr string
	hint   string
}

var hintRules = map[format.Format][]hintRule{
	format.JSONFormat: {
		{"looking for beginning of object key string", "JSON object keys must be double-quoted, and a trailing comma before '}' is not allowed"},
		{"looking for beginning of value", "check for a trailing comma, a comment, or a missing value; JSON allows none of them"},
		{"unexpected end of JSON input", "the document ends mid-value; check for unbalanced braces or brackets"},
		{"unexpected trailing data", "only one top-level JSON value is allowed"},
		{"invalid character", "check for trailing commas, comments, or unquoted keys"},
	},
	format.YAMLFormat: {
		{"tab", "YAML forbids tabs in indentation; use spaces"},
		{"cannot start any token", "YAML forbids tabs in indentation; use spaces"},
		{"mapping value", "a ':' inside an unquoted scalar usually needs the scalar quoted"},
		{"could not find expected", "check indentation and that every mapping key has a ':'"},
	},
	format.TOMLFormat: {
		{"expected value", "every key needs a value after '='; bare strings must be quoted"},
		{"expected", "check for missing quotes around string values"},
		{"duplicate", "TOML forbids defining the same key or table twice"},
		{"already been defined", "TOML forbids defining the same key or table twice"},
		{"cannot represent null", "TOML has no null; drop the key or give it a concrete value"},
		{"mixes", "TOML arrays here must hold elements of a single kind"},
	},
}

// Hint returns the first matching hint for a raw error message, or the
// empty string. Never fabricates a hint for an unrecognized message.
func Hint(f format.Format, raw string) string {
	lower := strings.ToLower(raw)
	for _, rule := range hintRules[f] {
		if strings.Contains(lower, strings.ToLower(rule.substr)) {
			return rule.hint
		}
	}
	return ""
}
