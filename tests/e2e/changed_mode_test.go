//go:build e2e

package e2e

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maylang/may/internal/cli"
	"github.com/maylang/may/internal/testutil"
)

// TestE2E_ChangedMode runs the requirement policy against a real git
// history instead of a stubbed diff.
func TestE2E_ChangedMode(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	env.InitGitRepo()
	env.WriteFile("auth/login.go", "package auth\n")
	env.CommitAll("initial")

	// Touch a watched path without shipping a package.
	env.WriteFile("auth/login.go", "package auth\n\nfunc Login() {}\n")
	env.CommitAll("change auth")

	result := env.RunMay("check", "--require", "changed", "--base", "HEAD~1", "--paths", "auth/")
	require.Equal(t, cli.ExitMissingRequired, result.ExitCode,
		"stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
	require.Contains(t, result.Stderr, "no change package was updated")

	// Shipping the package in the same range satisfies the policy.
	env.WritePackage("MC-0001-auth.may.md", validPackage)
	env.CommitAll("add change package")

	result = env.RunMay("check", "--require", "changed", "--base", "HEAD~2", "--paths", "auth/")
	require.Equal(t, cli.ExitSuccess, result.ExitCode,
		"stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
}

// An unresolvable base ref must not pass silently: the requirement
// stands and the failure reason is surfaced as a warning.
func TestE2E_ChangedModeFailsClosedOnBadRef(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	env.InitGitRepo()
	env.WriteFile("auth/login.go", "package auth\n")
	env.CommitAll("initial")

	result := env.RunMay("check", "--require", "changed", "--base", "no-such-ref", "--paths", "auth/")
	require.Equal(t, cli.ExitMissingRequired, result.ExitCode,
		"stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
	require.True(t, strings.Contains(result.Stderr, "warning"),
		"stderr should carry the history warning: %s", result.Stderr)
}

func TestE2E_ChangedModeUnwatchedPaths(t *testing.T) {
	env := testutil.NewE2EEnv(t)
	env.InitGitRepo()
	env.WriteFile("docs/readme.md", "hello\n")
	env.CommitAll("initial")

	env.WriteFile("docs/readme.md", "hello again\n")
	env.CommitAll("docs only")

	result := env.RunMay("check", "--require", "changed", "--base", "HEAD~1", "--paths", "auth/")
	require.Equal(t, cli.ExitSuccess, result.ExitCode,
		"stdout: %s\nstderr: %s", result.Stdout, result.Stderr)
}
