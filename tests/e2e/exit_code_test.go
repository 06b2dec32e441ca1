//go:build e2e

// Package e2e provides end-to-end tests for the may CLI.
package e2e

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maylang/may/internal/cli"
	"github.com/maylang/may/internal/testutil"
)

const validPackage = `---
id: "MC-0001"
type: change
scope: backend
risk: low
owner: "team-alpha"
rollback: revert_commit
ai_used: false
---

# Intent

Add session caching.

# Contract

- Input: session token

# Invariants

1. Tokens are never stored in plain text.

# Patch

` + "```diff" + `
-old
+new
` + "```" + `

# Verification

- ` + "`go test ./...`" + `

# Debug Map

| Symptom | Likely cause | First file to check |
`

// TestE2E_CheckExitCodes verifies the documented check exit codes:
// 0 success, 1 tool failure, 2 missing required package, 3 validation
// failed.
func TestE2E_CheckExitCodes(t *testing.T) {
	tests := map[string]struct {
		description  string
		setupFunc    func(env *testutil.E2EEnv)
		args         []string
		wantExitCode int
		wantSubstr   string
	}{
		"exit 0 - valid package": {
			description: "A single valid package validates cleanly",
			setupFunc: func(env *testutil.E2EEnv) {
				env.WritePackage("MC-0001-auth.may.md", validPackage)
			},
			args:         []string{"check"},
			wantExitCode: cli.ExitSuccess,
			wantSubstr:   "validated successfully",
		},
		"exit 2 - no packages in always mode": {
			description:  "Empty package directory fails the presence gate",
			setupFunc:    func(env *testutil.E2EEnv) {},
			args:         []string{"check", "--require", "always"},
			wantExitCode: cli.ExitMissingRequired,
			wantSubstr:   "No change packages found",
		},
		"exit 3 - invalid package": {
			description: "A malformed package fails validation",
			setupFunc: func(env *testutil.E2EEnv) {
				env.WritePackage("MC-0002-bad.may.md", "not a package\n")
			},
			args:         []string{"check"},
			wantExitCode: cli.ExitValidationFailed,
			wantSubstr:   "Validation failed",
		},
		"exit 1 - unknown require mode": {
			description:  "A bad flag value is a tool failure, not a verdict",
			setupFunc:    func(env *testutil.E2EEnv) {},
			args:         []string{"check", "--require", "sometimes"},
			wantExitCode: cli.ExitToolFailure,
			wantSubstr:   "sometimes",
		},
		"exit 1 - invalid config file": {
			description: "A config the commands cannot act on is a tool failure",
			setupFunc: func(env *testutil.E2EEnv) {
				env.WriteConfig("require: [broken\n")
			},
			args:         []string{"check"},
			wantExitCode: cli.ExitToolFailure,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			env := testutil.NewE2EEnv(t)
			tt.setupFunc(env)

			result := env.RunMay(tt.args...)

			require.Equal(t, tt.wantExitCode, result.ExitCode,
				"%s\nstdout: %s\nstderr: %s", tt.description, result.Stdout, result.Stderr)
			if tt.wantSubstr != "" {
				combined := result.Stdout + result.Stderr
				require.True(t, strings.Contains(combined, tt.wantSubstr),
					"output should contain %q, got:\n%s", tt.wantSubstr, combined)
			}
		})
	}
}
