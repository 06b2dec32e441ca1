package checker

import (
	"fmt"
	"io"

	"github.com/maylang/may/internal/output"
	"github.com/maylang/may/internal/validation"
)

// printReport renders the grouped validation report: by file, then by
// category. Issues arrive pre-sorted, so identical inputs always produce
// byte-identical output and CI logs stay diffable across runs.
func printReport(w io.Writer, issues []validation.Issue) {
	files := map[string]bool{}
	for _, is := range issues {
		files[is.Path] = true
	}

	fmt.Fprintln(w)
	output.Failure(w, "Validation failed: %d error(s) in %d file(s)", len(issues), len(files))
	fmt.Fprintln(w)

	current := ""
	for _, is := range issues {
		if is.Path != current {
			if current != "" {
				fmt.Fprintln(w)
			}
			current = is.Path
			output.FileHeader(w, is.Path)
		}
		output.IssueLine(w, string(is.Category), is.Message)
	}
	fmt.Fprintln(w)
}

func printMissingInDiff(w io.Writer, dir string) {
	fmt.Fprintln(w)
	output.Failure(w, "Code changed under watched paths, but no change package was updated (%s/*.may.md).", dir)
	fmt.Fprintf(w, "\n  Run:\n    may new --id MC-XXXX --slug my-change --scope backend --risk low --owner 'your-team'\n  and include it in this change.\n\n")
}

func printMissingOnDisk(w io.Writer, dir, reason string) {
	fmt.Fprintln(w)
	output.Failure(w, "No change packages found in %s/*.may.md (%s).", dir, reason)
	fmt.Fprintf(w, "\n  Create one with:\n    may new --id MC-0001 --slug my-change --scope backend --risk low --owner 'your-team'\n\n")
}

func printSuccess(w io.Writer, count int) {
	output.Success(w, "%d change package(s) validated successfully.", count)
}
