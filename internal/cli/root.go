// Package cli wires the may command tree: check, new, and version.
// Commands return *exitError to carry exit codes; cmd/may maps them via
// ExitCode.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maylang/may/internal/errors"
	"github.com/maylang/may/internal/git"
	"github.com/maylang/may/internal/version"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "may",
	Short: "Validate MayLang change packages",
	Long: `may validates MayLang change packages: structured Markdown documents
(.may.md) that pair every meaningful code change with its intent,
contract, invariants, patch evidence, and a runnable verification.

The check command gates CI: it decides whether a change package was
required for a commit range and whether the ones present are valid.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			git.SetDebugLogger(func(format string, a ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", a...)
			})
		}
	},
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")
}

// Execute runs the root command and prints any structured error.
// The caller decides the process exit code via ExitCode.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
	} else if _, ok := err.(*exitError); !ok {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
