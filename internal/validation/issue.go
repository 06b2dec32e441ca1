// Package validation checks parsed change packages against the
// frontmatter schema and the canonical document structure. Failures are
// value records collected into a list, never error control flow, so every
// discoverable defect surfaces in a single run.
package validation

import (
	"fmt"
	"sort"
)

// Category classifies a validation issue for grouping and tooling.
type Category string

const (
	CategoryFrontmatter  Category = "frontmatter"
	CategoryStructure    Category = "structure"
	CategoryVerification Category = "verification"
	CategoryPatch        Category = "patch"
)

// categoryRank fixes the report order within a file.
var categoryRank = map[Category]int{
	CategoryFrontmatter:  0,
	CategoryStructure:    1,
	CategoryVerification: 2,
	CategoryPatch:        3,
}

// Rank returns the sort position of the category. Unknown categories sort
// last.
func (c Category) Rank() int {
	if r, ok := categoryRank[c]; ok {
		return r
	}
	return len(categoryRank)
}

// Issue is a single validation failure for one file.
type Issue struct {
	Path     string
	Category Category
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: [%s] %s", i.Path, i.Category, i.Message)
}

// Sort orders issues by file path, then category rank, then message. The
// orchestrator relies on this for byte-identical grouped output across
// otherwise-identical runs, even when per-file validation ran in parallel.
func Sort(issues []Issue) {
	sort.SliceStable(issues, func(a, b int) bool {
		if issues[a].Path != issues[b].Path {
			return issues[a].Path < issues[b].Path
		}
		if issues[a].Category != issues[b].Category {
			return issues[a].Category.Rank() < issues[b].Category.Rank()
		}
		return issues[a].Message < issues[b].Message
	})
}
