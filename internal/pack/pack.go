// Package pack parses MayLang change-package (.may.md) files into a
// structured record: YAML frontmatter plus an ordered list of top-level
// Markdown sections. Parsing is a pure transformation of text; all
// content rules live in internal/validation.
package pack

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Section is one top-level heading and the body text it owns, i.e. every
// line up to the next top-level heading or end of file.
type Section struct {
	Heading string
	Body    string
}

// Package is a parsed change-package file. It is created fresh on every
// validation run and never mutated.
type Package struct {
	// Path is the filesystem location the file was read from (identity).
	Path string
	// Frontmatter holds the YAML mapping exactly as typed in the file.
	// No coercion happens beyond YAML scalar typing, so `ai_used: false`
	// arrives as a bool while `ai_used: "false"` arrives as a string.
	Frontmatter map[string]any
	// Sections lists top-level sections in file order.
	Sections []Section
}

// Headings returns the section headings in file order.
func (p *Package) Headings() []string {
	out := make([]string, len(p.Sections))
	for i, s := range p.Sections {
		out[i] = s.Heading
	}
	return out
}

// Section returns the first section with the given heading.
func (p *Package) Section(heading string) (Section, bool) {
	for _, s := range p.Sections {
		if s.Heading == heading {
			return s, true
		}
	}
	return Section{}, false
}

// ParseError describes a malformed construct that prevented parsing.
// The orchestrator converts it into a structure-category issue; it never
// aborts a batch run.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

const frontmatterDelimiter = "---"

// Parse splits raw file text into frontmatter and sections.
//
// The file must begin with a `---` delimiter line, contain a YAML mapping,
// and close with a matching delimiter. Everything after the closing
// delimiter is split on top-level headings (`# ` lines). Lines inside
// fenced code blocks are never treated as headings, so a `# comment`
// inside a ```diff fence does not create a phantom section.
func Parse(path, text string) (*Package, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != frontmatterDelimiter {
		return nil, &ParseError{Path: path, Message: "missing YAML frontmatter (--- delimiters)"}
	}

	closing := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") == frontmatterDelimiter {
			closing = i
			break
		}
	}
	if closing < 0 {
		return nil, &ParseError{Path: path, Message: "unterminated YAML frontmatter (missing closing ---)"}
	}

	fm, err := decodeFrontmatter(path, strings.Join(lines[1:closing], "\n"))
	if err != nil {
		return nil, err
	}

	return &Package{
		Path:        path,
		Frontmatter: fm,
		Sections:    splitSections(lines[closing+1:]),
	}, nil
}

// decodeFrontmatter decodes the delimited block as a YAML mapping.
func decodeFrontmatter(path, block string) (map[string]any, error) {
	var raw any
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return nil, &ParseError{Path: path, Message: fmt.Sprintf("invalid YAML in frontmatter: %v", err)}
	}
	fm, ok := raw.(map[string]any)
	if !ok {
		return nil, &ParseError{Path: path, Message: "frontmatter must be a YAML mapping"}
	}
	return fm, nil
}

// splitSections walks the post-frontmatter lines, opening a new section at
// every top-level heading. Fence state toggles on ``` lines so headings
// inside code blocks stay part of the surrounding body. Text before the
// first heading owns no section and is dropped.
func splitSections(lines []string) []Section {
	var sections []Section
	var body []string
	current := ""
	open := false
	inFence := false

	flush := func() {
		if open {
			sections = append(sections, Section{Heading: current, Body: strings.Join(body, "\n")})
		}
		body = body[:0]
	}

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}
		if !inFence {
			if h, ok := headingText(line); ok {
				flush()
				current = h
				open = true
				continue
			}
		}
		body = append(body, line)
	}
	flush()
	return sections
}

// headingText extracts the text of a top-level heading line. Only a single
// `#` followed by whitespace counts; `##` and deeper levels do not.
func headingText(line string) (string, bool) {
	if !strings.HasPrefix(line, "#") {
		return "", false
	}
	rest := line[1:]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	text := strings.TrimSpace(rest)
	if text == "" {
		return "", false
	}
	return text, true
}
