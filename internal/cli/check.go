package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/maylang/may/internal/checker"
	"github.com/maylang/may/internal/config"
	"github.com/maylang/may/internal/errors"
)

var (
	checkRequireFlag     string
	checkBaseFlag        string
	checkPathsFlag       string
	checkEnforceDiffFlag bool
	checkDirFlag         string
	checkConfigFlag      string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate change packages and enforce the requirement policy",
	Long: `Validate every change package on disk and decide whether one was
required for this run.

Requirement modes:
  always   - at least one change package must exist (default)
  changed  - required only when files under watched path prefixes changed
             between --base and HEAD; the package must be part of that
             same diff, not merely present from an earlier commit

Exit Codes:
  0 - all packages valid and requirement satisfied
  1 - tool failure (bad arguments, unreadable config)
  2 - a change package was required and none was present
  3 - at least one change package is invalid`,
	Example: `  # Require a package unconditionally (CI default)
  may check --require always

  # Require only when auth/ or payments/ changed since origin/main
  may check --require changed --base origin/main --paths auth/,payments/

  # Additionally require diff evidence in the Patch section
  may check --enforce-diff`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheckCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkRequireFlag, "require", "", "When packages are required: always or changed")
	checkCmd.Flags().StringVar(&checkBaseFlag, "base", "", "Git base ref for change detection, e.g. origin/main")
	checkCmd.Flags().StringVar(&checkPathsFlag, "paths", "", "Comma-separated path prefixes that trigger the requirement")
	checkCmd.Flags().BoolVar(&checkEnforceDiffFlag, "enforce-diff", false, "Require a ```diff fenced block or Link: line in the Patch section")
	checkCmd.Flags().StringVar(&checkDirFlag, "dir", "", "Directory holding *.may.md files (default \"maylang\")")
	checkCmd.Flags().StringVar(&checkConfigFlag, "config", "", "Path to project config (default: nearest .maylang.yml)")
}

func runCheckCommand(cmd *cobra.Command) error {
	cfg, err := config.Load(checkConfigFlag)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Configuration, "loading configuration",
			"Check the syntax of .maylang.yml",
			"Run with --config to point at an explicit config file")
	}

	opts, err := checkOptions(cmd, cfg)
	if err != nil {
		return err
	}

	verdict := checker.Run(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if code := verdict.ExitCode(); code != ExitSuccess {
		return &exitError{code: code}
	}
	return nil
}

// checkOptions merges config defaults with explicit flags; a flag the
// user set always wins.
func checkOptions(cmd *cobra.Command, cfg *config.Configuration) (checker.Options, error) {
	requireStr := cfg.Require
	if cmd.Flags().Changed("require") {
		requireStr = checkRequireFlag
	}
	mode, err := checker.ParseMode(requireStr)
	if err != nil {
		return checker.Options{}, errors.NewArgumentError(err.Error(),
			"Use --require always or --require changed")
	}

	base := cfg.Base
	if cmd.Flags().Changed("base") {
		base = checkBaseFlag
	}

	paths := cfg.PathPrefixes()
	if cmd.Flags().Changed("paths") {
		paths = splitPaths(checkPathsFlag)
	}

	dir := cfg.Dir
	if cmd.Flags().Changed("dir") {
		dir = checkDirFlag
	}

	enforceDiff := cfg.EnforceDiff
	if cmd.Flags().Changed("enforce-diff") {
		enforceDiff = checkEnforceDiffFlag
	}

	return checker.Options{
		Dir:         dir,
		Require:     mode,
		BaseRef:     base,
		Paths:       paths,
		EnforceDiff: enforceDiff,
	}, nil
}

func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
