package validation

import (
	"strings"
	"testing"

	"github.com/maylang/may/internal/pack"
)

func validFrontmatter() map[string]any {
	return map[string]any{
		"id":       "MC-0001",
		"type":     "change",
		"scope":    "backend",
		"risk":     "low",
		"owner":    "team-alpha",
		"rollback": "revert_commit",
		"ai_used":  false,
	}
}

func TestFrontmatter_Valid(t *testing.T) {
	issues := Frontmatter("x.may.md", validFrontmatter())
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

// Each missing or empty key must be reported as exactly that key and
// nothing else falsely flagged.
func TestFrontmatter_EachKeyMissing(t *testing.T) {
	for _, rule := range pack.RequiredKeys {
		t.Run("missing_"+rule.Key, func(t *testing.T) {
			fm := validFrontmatter()
			delete(fm, rule.Key)

			issues := Frontmatter("x.may.md", fm)
			if len(issues) != 1 {
				t.Fatalf("expected exactly 1 issue, got %v", issues)
			}
			if !strings.Contains(issues[0].Message, rule.Key) {
				t.Errorf("issue %q does not name key %q", issues[0].Message, rule.Key)
			}
			if issues[0].Category != CategoryFrontmatter {
				t.Errorf("category = %q", issues[0].Category)
			}
		})
	}
}

func TestFrontmatter_EmptyStringValues(t *testing.T) {
	for _, key := range []string{"id", "type", "scope", "risk", "owner", "rollback"} {
		t.Run("empty_"+key, func(t *testing.T) {
			fm := validFrontmatter()
			fm[key] = ""

			issues := Frontmatter("x.may.md", fm)
			if len(issues) != 1 {
				t.Fatalf("expected exactly 1 issue, got %v", issues)
			}
			if !strings.Contains(issues[0].Message, key) {
				t.Errorf("issue %q does not name key %q", issues[0].Message, key)
			}
		})
	}
}

func TestFrontmatter_AiUsedMustBeGenuineBool(t *testing.T) {
	cases := []struct {
		name  string
		value any
		valid bool
	}{
		{"native_false", false, true},
		{"native_true", true, true},
		{"quoted_false", "false", false},
		{"quoted_true", "true", false},
		{"quoted_yes", "yes", false},
		{"arbitrary_string", "maybe", false},
		{"integer", 1, false},
		{"null", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fm := validFrontmatter()
			fm["ai_used"] = tc.value

			issues := Frontmatter("x.may.md", fm)
			if tc.valid && len(issues) != 0 {
				t.Errorf("expected no issues, got %v", issues)
			}
			if !tc.valid {
				if len(issues) != 1 {
					t.Fatalf("expected exactly 1 issue, got %v", issues)
				}
				if !strings.Contains(issues[0].Message, "ai_used") {
					t.Errorf("issue %q does not name ai_used", issues[0].Message)
				}
			}
		})
	}
}

func TestFrontmatter_UnknownKeysTolerated(t *testing.T) {
	fm := validFrontmatter()
	fm["reviewers"] = []any{"alice", "bob"}
	fm["ticket"] = "JIRA-123"

	issues := Frontmatter("x.may.md", fm)
	if len(issues) != 0 {
		t.Errorf("unknown keys must not be flagged, got %v", issues)
	}
}

func TestFrontmatter_MultipleDefectsReportedTogether(t *testing.T) {
	fm := validFrontmatter()
	delete(fm, "id")
	fm["owner"] = ""
	fm["ai_used"] = "false"

	issues := Frontmatter("x.may.md", fm)
	if len(issues) != 3 {
		t.Errorf("expected 3 issues in one pass, got %d: %v", len(issues), issues)
	}
}

func TestFrontmatter_NonStringScalarRejected(t *testing.T) {
	fm := validFrontmatter()
	fm["risk"] = 3

	issues := Frontmatter("x.may.md", fm)
	if len(issues) != 1 || !strings.Contains(issues[0].Message, "risk") {
		t.Errorf("expected one issue naming risk, got %v", issues)
	}
}
