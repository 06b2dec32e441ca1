// Package output provides terminal output formatting utilities for the
// may CLI. This package is designed to have minimal dependencies to
// avoid import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	green  = color.New(color.FgGreen, color.Bold).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if
// unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// Success prints a green checkmark line.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

// Failure prints a red cross line.
func Failure(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", red("✗"), fmt.Sprintf(format, args...))
}

// Warn prints a yellow warning line.
func Warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", yellow("⚠"), fmt.Sprintf(format, args...))
}

// FileHeader prints the dimmed per-file group header used by the check
// report, clipped to the terminal width.
func FileHeader(w io.Writer, path string) {
	rule := "──"
	header := fmt.Sprintf("  %s %s %s", rule, path, rule)
	if max := GetTerminalWidth(); len(header) > max && max > 8 {
		header = header[:max]
	}
	fmt.Fprintln(w, faint(header))
}

// IssueLine prints one categorized issue under a file header.
func IssueLine(w io.Writer, category, message string) {
	label := strings.ToUpper(category[:1]) + category[1:]
	fmt.Fprintf(w, "    %s [%s] %s\n", red("✗"), cyan(label), message)
}
