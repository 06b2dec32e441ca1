package git

import "strings"

// ChangeSet is the result of one diff query: changed paths split by kind.
// It is derived, read-only, and recomputed per invocation; the checker
// keeps no persisted state.
type ChangeSet struct {
	Added    []string
	Modified []string
	Deleted  []string
}

// All returns every changed path regardless of kind. Deletions count:
// removing a watched file is still a change that can require a package.
func (cs *ChangeSet) All() []string {
	out := make([]string, 0, len(cs.Added)+len(cs.Modified)+len(cs.Deleted))
	out = append(out, cs.Added...)
	out = append(out, cs.Modified...)
	out = append(out, cs.Deleted...)
	return out
}

// TouchesWatched reports whether any changed path falls under one of the
// watched prefixes. Paths inside the package directory are excluded from
// matching: touching a change package alone never triggers the
// requirement for one. An empty prefix set matches everything.
func (cs *ChangeSet) TouchesWatched(prefixes []string, packageDir string) bool {
	for _, p := range cs.All() {
		if underDir(p, packageDir) {
			continue
		}
		if len(prefixes) == 0 {
			return true
		}
		for _, prefix := range prefixes {
			if strings.HasPrefix(p, prefix) {
				return true
			}
		}
	}
	return false
}

// TouchesPackage reports whether the diff itself contains a change
// package (*.may.md under the package directory). Presence on disk from
// an earlier commit does not count in changed mode; the package must be
// part of the diff being checked.
func (cs *ChangeSet) TouchesPackage(packageDir string) bool {
	for _, p := range cs.All() {
		if underDir(p, packageDir) && strings.HasSuffix(p, ".may.md") {
			return true
		}
	}
	return false
}

func underDir(path, dir string) bool {
	return strings.HasPrefix(path, strings.TrimSuffix(dir, "/")+"/")
}
