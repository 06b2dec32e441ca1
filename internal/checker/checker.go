// Package checker orchestrates a check run: discover change packages on
// disk, resolve whether one was required for this commit range, validate
// every discovered file, and reduce everything to a single verdict with
// a deterministic grouped report.
package checker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/maylang/may/internal/git"
	"github.com/maylang/may/internal/pack"
	"github.com/maylang/may/internal/validation"
)

// DiffFunc is the narrow boundary to version control: it resolves the
// changed paths between a base ref and HEAD. Tests substitute a fake so
// requirement logic runs without a real repository.
type DiffFunc func(root, base string) (*git.ChangeSet, error)

// DefaultDir is the conventional directory holding change packages.
const DefaultDir = "maylang"

// validateWorkers caps per-file validation concurrency.
const validateWorkers = 4

// Options configures a check run.
type Options struct {
	// Root is the working directory the run operates in (default ".").
	Root string
	// Dir is the directory holding *.may.md files, relative to Root
	// (default "maylang").
	Dir string
	// Require is the requirement mode.
	Require Mode
	// BaseRef is the git ref diffed against in changed mode.
	BaseRef string
	// Paths are the watched path prefixes for changed mode.
	Paths []string
	// EnforceDiff requires a ```diff fence or Link: line in Patch.
	EnforceDiff bool
	// Diff resolves changed files; defaults to git.ChangedFiles.
	Diff DiffFunc
}

func (o Options) withDefaults() Options {
	if o.Root == "" {
		o.Root = "."
	}
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	if o.Require == "" {
		o.Require = ModeAlways
	}
	if o.Diff == nil {
		o.Diff = git.ChangedFiles
	}
	return o
}

// Verdict is the final outcome of a check run.
type Verdict int

const (
	Pass Verdict = iota
	MissingRequired
	ValidationFailed
)

func (v Verdict) String() string {
	switch v {
	case Pass:
		return "pass"
	case MissingRequired:
		return "missing required change package"
	case ValidationFailed:
		return "validation failed"
	default:
		return "unknown"
	}
}

// ExitCode maps the verdict to the check command's exit code contract.
func (v Verdict) ExitCode() int {
	switch v {
	case Pass:
		return 0
	case MissingRequired:
		return 2
	case ValidationFailed:
		return 3
	default:
		return 1
	}
}

// Discover globs for change packages under root/dir, sorted for
// deterministic output.
func Discover(root, dir string) []string {
	files, err := filepath.Glob(filepath.Join(root, dir, "*.may.md"))
	if err != nil {
		// Only malformed patterns error, and ours is fixed.
		return nil
	}
	sort.Strings(files)
	return files
}

// Run executes the full check pipeline and returns the verdict.
//
// Precedence: the missing-package condition is evaluated first and is
// definitive. Validation failures on unrelated files only matter once
// presence is established.
func Run(opts Options, out, errOut io.Writer) Verdict {
	opts = opts.withDefaults()
	files := Discover(opts.Root, opts.Dir)

	var changes *git.ChangeSet
	var histErr error
	if opts.Require == ModeChanged && opts.BaseRef != "" {
		changes, histErr = opts.Diff(opts.Root, opts.BaseRef)
		if histErr != nil {
			fmt.Fprintf(errOut, "warning: %v\n", histErr)
		}
	}

	decision := Resolve(opts.Require, changes, histErr, opts.BaseRef, opts.Paths, opts.Dir)

	if decision.Requirement == RequiredInDiff && !changes.TouchesPackage(opts.Dir) {
		printMissingInDiff(errOut, opts.Dir)
		return MissingRequired
	}
	if decision.Requirement != NotRequired && len(files) == 0 {
		printMissingOnDisk(errOut, opts.Dir, decision.Reason)
		return MissingRequired
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No change packages to validate; skipping.")
		return Pass
	}

	issues := validateAll(files, opts.EnforceDiff)
	if len(issues) > 0 {
		printReport(errOut, issues)
		return ValidationFailed
	}

	printSuccess(out, len(files))
	return Pass
}

// validateAll parses and validates every file. Files are independent, so
// the work runs in parallel; results land in a per-file slot and are
// merged in discovery order, keeping the aggregated report order-stable.
func validateAll(files []string, enforceDiff bool) []validation.Issue {
	results := make([][]validation.Issue, len(files))

	g := new(errgroup.Group)
	g.SetLimit(validateWorkers)
	for i, f := range files {
		g.Go(func() error {
			results[i] = validateFile(f, enforceDiff)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; issues are values

	var all []validation.Issue
	for _, r := range results {
		all = append(all, r...)
	}
	validation.Sort(all)
	return all
}

// validateFile runs the parser and both validators on one file. Read and
// parse failures become structure-category issues so one bad file never
// aborts the batch.
func validateFile(path string, enforceDiff bool) []validation.Issue {
	text, err := os.ReadFile(path)
	if err != nil {
		return []validation.Issue{{
			Path:     path,
			Category: validation.CategoryStructure,
			Message:  fmt.Sprintf("cannot read file: %v", err),
		}}
	}

	pkg, err := pack.Parse(path, string(text))
	if err != nil {
		msg := err.Error()
		if pe, ok := err.(*pack.ParseError); ok {
			msg = pe.Message
		}
		return []validation.Issue{{
			Path:     path,
			Category: validation.CategoryStructure,
			Message:  msg,
		}}
	}

	issues := validation.Frontmatter(path, pkg.Frontmatter)
	issues = append(issues, validation.Structure(path, pkg.Sections, enforceDiff)...)
	return issues
}
