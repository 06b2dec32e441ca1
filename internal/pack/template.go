package pack

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateFields are the identifying values substituted into a fresh
// change package by `may new`.
type TemplateFields struct {
	ID       string
	Slug     string
	Scope    string
	Risk     string
	Owner    string
	Rollback string
}

// Filename returns the on-disk name for a new package: <id>-<slug>.may.md.
func (f TemplateFields) Filename() string {
	return fmt.Sprintf("%s-%s.may.md", f.ID, f.Slug)
}

// packageTemplate renders a package that satisfies the parser, the
// frontmatter schema, and the structure rules as-is. The `# Paste or
// link...` line sits inside a fence, so it never reads as a heading.
const packageTemplate = `---
id: "{{.ID}}"
type: change
scope: "{{.Scope}}"
risk: "{{.Risk}}"
owner: "{{.Owner}}"
rollback: "{{.Rollback}}"
ai_used: false
---

# Intent

_Describe **why** this change exists in one or two sentences._

# Contract

_What does this change promise to the rest of the system?_

- Input: …
- Output: …
- Side-effects: …

# Invariants

_List properties that must remain true before **and** after this change._

1. …

# Patch

` + "```diff" + `
# Paste or link your diff here
` + "```" + `

# Verification

_At least one runnable command that proves correctness._

- ` + "`go test ./...`" + `

# Debug Map

_If something breaks, where should an engineer look first?_

| Symptom | Likely cause | First file to check |
|---------|-------------|---------------------|
| …       | …           | …                   |
`

var tmpl = template.Must(template.New("package").Parse(packageTemplate))

// Render returns a fully-rendered change package for the given fields.
func Render(fields TemplateFields) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, fields); err != nil {
		return "", fmt.Errorf("rendering change package template: %w", err)
	}
	return buf.String(), nil
}
