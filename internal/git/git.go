// Package git computes the set of files changed between a base ref and
// HEAD. It uses the go-git library so change detection works without a
// git CLI installation. Ref-resolution failures (shallow clone, detached
// or orphan HEAD, unknown base) are data conditions surfaced as
// *HistoryError, never crashes: the requirement resolver decides what a
// missing history means.
package git

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it is a no-op; set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// HistoryError reports that the versioned history could not be consulted.
type HistoryError struct {
	Op  string
	Err error
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *HistoryError) Unwrap() error { return e.Err }

// openRepo opens the repository at path (or the working directory when
// path is empty), traversing up the tree to find the repository root.
func openRepo(path string) (*git.Repository, error) {
	if path == "" || path == "." {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return repo, nil
}

// ChangedFiles returns the ChangeSet between base and HEAD.
//
// The diff endpoint on the base side is the merge base of the two commits
// when one can be computed (the three-dot diff, correct on branches).
// When no merge base exists (shallow clones, orphan histories) the
// comparison falls back to the base commit directly, matching the
// two-dot behavior.
func ChangedFiles(root, base string) (*ChangeSet, error) {
	repo, err := openRepo(root)
	if err != nil {
		return nil, &HistoryError{Op: "open repository", Err: err}
	}

	baseHash, err := repo.ResolveRevision(plumbing.Revision(base))
	if err != nil {
		return nil, &HistoryError{Op: fmt.Sprintf("resolve base ref %q", base), Err: err}
	}
	baseCommit, err := repo.CommitObject(*baseHash)
	if err != nil {
		return nil, &HistoryError{Op: fmt.Sprintf("load base commit %s", baseHash), Err: err}
	}

	headRef, err := repo.Head()
	if err != nil {
		return nil, &HistoryError{Op: "resolve HEAD", Err: err}
	}
	headCommit, err := repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, &HistoryError{Op: "load HEAD commit", Err: err}
	}

	from := baseCommit
	if bases, err := headCommit.MergeBase(baseCommit); err == nil && len(bases) > 0 {
		from = bases[0]
	} else {
		logDebug("[git] no merge base for %s..%s, using base commit directly", base, headRef.Hash())
	}

	cs, err := diffCommits(from, headCommit)
	if err != nil {
		return nil, &HistoryError{Op: fmt.Sprintf("diff %s..HEAD", base), Err: err}
	}

	logDebug("[git] ChangedFiles: %d added, %d modified, %d deleted",
		len(cs.Added), len(cs.Modified), len(cs.Deleted))
	return cs, nil
}

// diffCommits classifies every changed path between two commits.
func diffCommits(from, to *object.Commit) (*ChangeSet, error) {
	patch, err := from.Patch(to)
	if err != nil {
		return nil, err
	}

	cs := &ChangeSet{}
	for _, fp := range patch.FilePatches() {
		src, dst := fp.Files()
		switch {
		case src == nil && dst != nil:
			cs.Added = append(cs.Added, dst.Path())
		case src != nil && dst == nil:
			cs.Deleted = append(cs.Deleted, src.Path())
		case src != nil && dst != nil:
			cs.Modified = append(cs.Modified, dst.Path())
		}
	}
	return cs, nil
}
