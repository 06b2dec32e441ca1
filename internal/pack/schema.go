package pack

import (
	"fmt"
	"strings"
)

// FieldRule pairs a required frontmatter key with its value check.
// The schema is an ordered list of rules rather than ad hoc conditionals,
// so adding a required key is a one-line edit.
type FieldRule struct {
	Key   string
	Check func(v any) error
}

// RequiredKeys is the process-wide frontmatter schema: every key must be
// present and pass its check. Unknown extra keys are tolerated for
// forward compatibility and never flagged.
var RequiredKeys = []FieldRule{
	{Key: "id", Check: nonEmptyString},
	{Key: "type", Check: nonEmptyString},
	{Key: "scope", Check: nonEmptyString},
	{Key: "risk", Check: nonEmptyString},
	{Key: "owner", Check: nonEmptyString},
	{Key: "rollback", Check: nonEmptyString},
	{Key: "ai_used", Check: genuineBool},
}

// CanonicalHeadings is the fixed sequence of top-level headings a change
// package must carry, in order, with nothing interleaved. Comparison is
// exact text: near-miss headings (extra punctuation, different case) are
// structural errors, never silently accepted.
var CanonicalHeadings = []string{
	"Intent",
	"Contract",
	"Invariants",
	"Patch",
	"Verification",
	"Debug Map",
}

func nonEmptyString(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("must be a non-empty string, got %s", yamlTypeName(v))
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("must be a non-empty string")
	}
	return nil
}

// genuineBool accepts only a native YAML boolean. Boolean-looking strings
// are called out explicitly: authors copying stale templates often quote
// the value, which YAML types as a string.
func genuineBool(v any) error {
	switch t := v.(type) {
	case bool:
		return nil
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "false", "yes", "no":
			return fmt.Errorf("must be a YAML boolean, not the quoted string %q", t)
		}
		return fmt.Errorf("must be a YAML boolean, got string %q", t)
	default:
		return fmt.Errorf("must be a YAML boolean, got %s", yamlTypeName(v))
	}
}

// yamlTypeName names a decoded YAML value the way an author would read it.
func yamlTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int, int64, uint64:
		return "integer"
	case float64:
		return "float"
	case string:
		return "string"
	case []any:
		return "sequence"
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}
