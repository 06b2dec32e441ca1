package validation

import (
	"fmt"

	"github.com/maylang/may/internal/pack"
)

// Frontmatter checks the parsed frontmatter mapping against the required
// key schema. Rules are applied independently and all violations are
// reported together: authors copying stale templates usually have several
// defects at once, and a fix-one/rerun loop is slow.
func Frontmatter(path string, fm map[string]any) []Issue {
	var issues []Issue
	for _, rule := range pack.RequiredKeys {
		v, ok := fm[rule.Key]
		if !ok {
			issues = append(issues, Issue{
				Path:     path,
				Category: CategoryFrontmatter,
				Message:  fmt.Sprintf("missing required frontmatter key: %s", rule.Key),
			})
			continue
		}
		if err := rule.Check(v); err != nil {
			issues = append(issues, Issue{
				Path:     path,
				Category: CategoryFrontmatter,
				Message:  fmt.Sprintf("frontmatter key %q %v", rule.Key, err),
			})
		}
	}
	return issues
}
