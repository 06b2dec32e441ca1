package checker

import (
	"fmt"
	"strings"

	"github.com/maylang/may/internal/git"
)

// Mode selects when a change package is required.
type Mode string

const (
	// ModeAlways requires a change package unconditionally.
	ModeAlways Mode = "always"
	// ModeChanged requires a change package only when watched paths
	// changed in the diff against the base ref.
	ModeChanged Mode = "changed"
)

// ParseMode parses a requirement mode string.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "always":
		return ModeAlways, nil
	case "changed":
		return ModeChanged, nil
	default:
		return "", fmt.Errorf("invalid require mode %q (valid modes: always, changed)", s)
	}
}

// Requirement is the strength of the package requirement for this run.
type Requirement int

const (
	// NotRequired means no package is needed; any discovered packages
	// are still validated.
	NotRequired Requirement = iota
	// RequiredOnDisk means at least one package must exist on disk.
	RequiredOnDisk
	// RequiredInDiff means a package path must appear in the changed set
	// itself; presence on disk from an earlier commit is not enough.
	RequiredInDiff
)

// Decision is the resolver output: whether a package was required for
// this run and why. Pure function output, never stored.
type Decision struct {
	Requirement Requirement
	Reason      string
}

// Resolve combines the mode and the change-detection result into a
// requirement decision.
//
// When the history comparison failed (histErr non-nil), the run is
// treated as "required, could not verify" and falls back to the on-disk
// requirement: fail closed, not open. A silent pass on a shallow or
// detached CI checkout would defeat the gate.
func Resolve(mode Mode, changes *git.ChangeSet, histErr error, baseRef string, prefixes []string, packageDir string) Decision {
	if mode == ModeAlways {
		return Decision{Requirement: RequiredOnDisk, Reason: "require mode is always"}
	}

	if baseRef == "" {
		return Decision{Requirement: NotRequired, Reason: "no base ref given; change detection skipped"}
	}
	if histErr != nil {
		return Decision{
			Requirement: RequiredOnDisk,
			Reason:      fmt.Sprintf("could not determine changed files (%v); failing closed", histErr),
		}
	}

	if changes.TouchesWatched(prefixes, packageDir) {
		return Decision{
			Requirement: RequiredInDiff,
			Reason:      fmt.Sprintf("changed files match watched paths [%s]", strings.Join(prefixes, ", ")),
		}
	}
	return Decision{Requirement: NotRequired, Reason: "no watched paths changed"}
}
