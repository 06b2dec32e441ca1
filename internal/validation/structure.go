package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/maylang/may/internal/pack"
)

var (
	// A runnable command is a fenced code block or an inline code span.
	fencedBlockRe = regexp.MustCompile("(?m)^[ \t]*```")
	inlineCodeRe  = regexp.MustCompile("`[^`\n]+`")

	// Diff evidence in the Patch section: a ```diff fence or a Link: line
	// carrying non-empty reference text.
	diffFenceRe = regexp.MustCompile("(?m)^[ \t]*```diff[ \t]*$")
	linkLineRe  = regexp.MustCompile(`(?m)^Link:[ \t]*\S`)
)

// Structure checks heading presence and order plus per-section content
// rules. A wrong heading sequence does not suppress the body checks:
// Verification and Patch are located by name first, then by canonical
// position as a best effort, so unrelated defects still surface together.
func Structure(path string, sections []pack.Section, enforceDiff bool) []Issue {
	var issues []Issue

	actual := make([]string, len(sections))
	for i, s := range sections {
		actual[i] = s.Heading
	}
	if !slices.Equal(actual, pack.CanonicalHeadings) {
		issues = append(issues, Issue{
			Path:     path,
			Category: CategoryStructure,
			Message: fmt.Sprintf("heading sequence must be exactly [%s], got [%s]",
				joinHeadings(pack.CanonicalHeadings), joinHeadings(actual)),
		})
	}

	issues = append(issues, checkVerification(path, sections)...)
	if enforceDiff {
		issues = append(issues, checkPatch(path, sections)...)
	}
	return issues
}

func checkVerification(path string, sections []pack.Section) []Issue {
	body, ok := sectionBody(sections, "Verification")
	if !ok {
		// Already reported by the sequence check; nothing to inspect.
		return nil
	}
	if strings.TrimSpace(body) == "" {
		return []Issue{{
			Path:     path,
			Category: CategoryVerification,
			Message:  "Verification section is empty",
		}}
	}
	if !fencedBlockRe.MatchString(body) && !inlineCodeRe.MatchString(body) {
		return []Issue{{
			Path:     path,
			Category: CategoryVerification,
			Message:  "Verification section must contain at least one runnable command (a fenced code block or an inline `command` span)",
		}}
	}
	return nil
}

func checkPatch(path string, sections []pack.Section) []Issue {
	body, ok := sectionBody(sections, "Patch")
	if !ok {
		return nil
	}
	if strings.TrimSpace(body) == "" {
		return []Issue{{
			Path:     path,
			Category: CategoryPatch,
			Message:  "Patch section is empty",
		}}
	}
	if !diffFenceRe.MatchString(body) && !linkLineRe.MatchString(body) {
		return []Issue{{
			Path:     path,
			Category: CategoryPatch,
			Message:  "Patch section must contain a ```diff fenced block or a 'Link:' reference line",
		}}
	}
	return nil
}

// sectionBody finds the body for a canonical heading: exact name match
// first, canonical position as fallback when the sequence slipped.
func sectionBody(sections []pack.Section, heading string) (string, bool) {
	for _, s := range sections {
		if s.Heading == heading {
			return s.Body, true
		}
	}
	pos := slices.Index(pack.CanonicalHeadings, heading)
	if pos >= 0 && pos < len(sections) {
		return sections[pos].Body, true
	}
	return "", false
}

func joinHeadings(hs []string) string {
	return strings.Join(hs, ", ")
}
