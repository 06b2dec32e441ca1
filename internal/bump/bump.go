// Package bump rewrites the project version field in .maylang.yml for
// `may version --bump`. Only the first version line is touched and the
// surrounding formatting is preserved byte for byte.
package bump

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Part selects which version component to bump.
type Part string

const (
	PartPatch Part = "patch"
	PartMinor Part = "minor"
	PartMajor Part = "major"
)

// ParsePart parses a bump part string.
func ParsePart(s string) (Part, error) {
	switch s {
	case "patch":
		return PartPatch, nil
	case "minor":
		return PartMinor, nil
	case "major":
		return PartMajor, nil
	default:
		return "", fmt.Errorf("unknown bump part %q (use patch, minor, or major)", s)
	}
}

// Version is a semantic version with major, minor, patch components.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses an X.Y.Z string into a Version.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected X.Y.Z)", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version component %q in %s", p, s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// String returns the version in X.Y.Z format.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns the next version for the given part. Minor bumps reset
// patch; major bumps reset minor and patch.
func (v Version) Bump(part Part) Version {
	switch part {
	case PartMajor:
		return Version{Major: v.Major + 1}
	case PartMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// versionLineRe matches a top-level `version:` line with an X.Y.Z value,
// quoted or bare.
var versionLineRe = regexp.MustCompile(`(?m)^(version:[ \t]*["']?)(\d+\.\d+\.\d+)(["']?[ \t]*)$`)

// Result records one applied bump.
type Result struct {
	Path string
	Old  Version
	New  Version
}

// File bumps the version line in the file at path, first occurrence only.
func File(path string, part Part) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := string(data)

	loc := versionLineRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, fmt.Errorf(`no version: "x.y.z" line found in %s`, path)
	}

	old, err := ParseVersion(text[loc[4]:loc[5]])
	if err != nil {
		return nil, fmt.Errorf("parsing version in %s: %w", path, err)
	}
	next := old.Bump(part)

	updated := text[:loc[4]] + next.String() + text[loc[5]:]
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	return &Result{Path: path, Old: old, New: next}, nil
}
