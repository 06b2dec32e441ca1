package validation

import (
	"strings"
	"testing"

	"github.com/maylang/may/internal/pack"
)

func canonicalSections() []pack.Section {
	return []pack.Section{
		{Heading: "Intent", Body: "Why.\n"},
		{Heading: "Contract", Body: "- Input: x\n"},
		{Heading: "Invariants", Body: "1. y\n"},
		{Heading: "Patch", Body: "```diff\n-a\n+b\n```\n"},
		{Heading: "Verification", Body: "- `go test ./...`\n"},
		{Heading: "Debug Map", Body: "| a | b | c |\n"},
	}
}

func issuesOf(issues []Issue, cat Category) []Issue {
	var out []Issue
	for _, is := range issues {
		if is.Category == cat {
			out = append(out, is)
		}
	}
	return out
}

func TestStructure_CanonicalOrderPasses(t *testing.T) {
	issues := Structure("x.may.md", canonicalSections(), true)
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

// Every deviation from the canonical order (swaps, omissions, extras,
// duplicates) is a structural issue.
func TestStructure_Deviations(t *testing.T) {
	swap := canonicalSections()
	swap[0], swap[1] = swap[1], swap[0]

	missing := canonicalSections()[:5]

	extra := append(canonicalSections(), pack.Section{Heading: "Appendix", Body: "x\n"})

	duplicate := append(canonicalSections(), pack.Section{Heading: "Intent", Body: "again\n"})

	nearMiss := canonicalSections()
	nearMiss[0].Heading = "intent"

	punctuated := canonicalSections()
	punctuated[4].Heading = "Verification:"

	cases := map[string][]pack.Section{
		"swapped":     swap,
		"missing":     missing,
		"extra":       extra,
		"duplicate":   duplicate,
		"wrong_case":  nearMiss,
		"punctuation": punctuated,
	}

	for name, sections := range cases {
		t.Run(name, func(t *testing.T) {
			structural := issuesOf(Structure("x.may.md", sections, false), CategoryStructure)
			if len(structural) != 1 {
				t.Fatalf("expected exactly 1 structural issue, got %v", structural)
			}
			if !strings.Contains(structural[0].Message, "Intent, Contract, Invariants, Patch, Verification, Debug Map") {
				t.Errorf("issue must name the expected sequence: %q", structural[0].Message)
			}
		})
	}
}

func TestStructure_VerificationNeedsCommand(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		valid bool
	}{
		{"inline_span", "Run `go test ./...` locally.\n", true},
		{"fenced_block", "```\nmake check\n```\n", true},
		{"list_item_with_span", "- `go vet ./...`\n", true},
		{"prose_only", "We tested it carefully by hand.\n", false},
		{"empty", "\n\n", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sections := canonicalSections()
			sections[4].Body = tc.body

			verification := issuesOf(Structure("x.may.md", sections, false), CategoryVerification)
			if tc.valid && len(verification) != 0 {
				t.Errorf("expected no verification issues, got %v", verification)
			}
			if !tc.valid && len(verification) != 1 {
				t.Errorf("expected 1 verification issue, got %v", verification)
			}
		})
	}
}

func TestStructure_PatchDiffEnforcement(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		valid bool
	}{
		{"diff_fence", "```diff\n-a\n+b\n```\n", true},
		{"link_line", "Link: https://example.com/pr/42\n", true},
		{"plain_fence", "```\nnot a diff\n```\n", false},
		{"prose", "See the attached changes.\n", false},
		{"bare_link_token", "Link:\n", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sections := canonicalSections()
			sections[3].Body = tc.body

			patch := issuesOf(Structure("x.may.md", sections, true), CategoryPatch)
			if tc.valid && len(patch) != 0 {
				t.Errorf("expected no patch issues, got %v", patch)
			}
			if !tc.valid && len(patch) != 1 {
				t.Errorf("expected 1 patch issue, got %v", patch)
			}
		})
	}
}

func TestStructure_EnforceDiffOff(t *testing.T) {
	sections := canonicalSections()
	sections[3].Body = "Prose only, no diff.\n"

	patch := issuesOf(Structure("x.may.md", sections, false), CategoryPatch)
	if len(patch) != 0 {
		t.Errorf("patch issues must not be reported when enforcement is off: %v", patch)
	}
}

// A broken heading sequence must not suppress body checks: sections are
// matched by name, falling back to canonical position.
func TestStructure_BodyChecksSurviveBadSequence(t *testing.T) {
	sections := canonicalSections()
	sections[4].Heading = "Verify" // near-miss name
	sections[4].Body = "Prose only.\n"

	issues := Structure("x.may.md", sections, false)
	if len(issuesOf(issues, CategoryStructure)) != 1 {
		t.Errorf("expected a structural issue: %v", issues)
	}
	if len(issuesOf(issues, CategoryVerification)) != 1 {
		t.Errorf("expected verification checked by position despite bad heading: %v", issues)
	}
}

func TestSort_Deterministic(t *testing.T) {
	issues := []Issue{
		{Path: "b.may.md", Category: CategoryPatch, Message: "m1"},
		{Path: "a.may.md", Category: CategoryStructure, Message: "m2"},
		{Path: "a.may.md", Category: CategoryFrontmatter, Message: "m3"},
		{Path: "a.may.md", Category: CategoryFrontmatter, Message: "m1"},
	}
	Sort(issues)

	want := []Issue{
		{Path: "a.may.md", Category: CategoryFrontmatter, Message: "m1"},
		{Path: "a.may.md", Category: CategoryFrontmatter, Message: "m3"},
		{Path: "a.may.md", Category: CategoryStructure, Message: "m2"},
		{Path: "b.may.md", Category: CategoryPatch, Message: "m1"},
	}
	for i := range want {
		if issues[i] != want[i] {
			t.Errorf("issues[%d] = %+v, want %+v", i, issues[i], want[i])
		}
	}
}
