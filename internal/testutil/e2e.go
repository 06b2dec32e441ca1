// Package testutil provides helpers for may's end-to-end tests.
package testutil

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

var (
	// mayBinaryPath caches the built may binary path for the test session.
	mayBinaryPath string
	mayBuildOnce  sync.Once
	mayBuildErr   error
)

// E2EEnv is an isolated project directory for exercising the built may
// binary. Environment variables with the MAY_ prefix are stripped from
// child processes so host configuration cannot leak into assertions.
type E2EEnv struct {
	t *testing.T

	// Dir is the project root commands run in.
	Dir string
}

// CommandResult captures one invocation of the may binary.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// NewE2EEnv builds the may binary (once per session) and creates a fresh
// project directory.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	mayBuildOnce.Do(func() {
		mayBinaryPath, mayBuildErr = buildMay()
	})
	if mayBuildErr != nil {
		t.Fatalf("building may: %v", mayBuildErr)
	}

	return &E2EEnv{t: t, Dir: t.TempDir()}
}

func buildMay() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "may-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	binaryPath := filepath.Join(tmpDir, "may")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/may")
	cmd.Dir = repoRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("building may: %w\noutput: %s", err, output)
	}
	return binaryPath, nil
}

// WriteConfig writes a .maylang.yml at the project root.
func (e *E2EEnv) WriteConfig(content string) {
	e.t.Helper()
	e.WriteFile(".maylang.yml", content)
}

// WritePackage writes a change package under the maylang directory.
func (e *E2EEnv) WritePackage(name, content string) {
	e.t.Helper()
	e.WriteFile(filepath.Join("maylang", name), content)
}

// WriteFile writes an arbitrary file relative to the project root.
func (e *E2EEnv) WriteFile(rel, content string) {
	e.t.Helper()
	path := filepath.Join(e.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatalf("writing %s: %v", rel, err)
	}
}

// InitGitRepo initialises a git repository with an identity and a main
// branch so refs resolve the same way everywhere.
func (e *E2EEnv) InitGitRepo() {
	e.t.Helper()
	e.Git("init", "--initial-branch=main")
	e.Git("config", "user.email", "e2e@example.com")
	e.Git("config", "user.name", "E2E")
}

// CommitAll stages everything and commits.
func (e *E2EEnv) CommitAll(message string) {
	e.t.Helper()
	e.Git("add", "-A")
	e.Git("commit", "-m", message, "--no-gpg-sign")
}

// Git runs a git command in the project directory and fails the test on
// error.
func (e *E2EEnv) Git(args ...string) {
	e.t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = e.Dir
	if output, err := cmd.CombinedOutput(); err != nil {
		e.t.Fatalf("git %s: %v\n%s", strings.Join(args, " "), err, output)
	}
}

// RunMay runs the built binary with the given arguments in the project
// directory.
func (e *E2EEnv) RunMay(args ...string) CommandResult {
	e.t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(mayBinaryPath, args...)
	cmd.Dir = e.Dir
	cmd.Env = sanitizedEnv()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			e.t.Fatalf("running may %s: %v", strings.Join(args, " "), err)
		}
		result.ExitCode = exitErr.ExitCode()
	}
	return result
}

func sanitizedEnv() []string {
	var env []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "MAY_") {
			continue
		}
		env = append(env, kv)
	}
	return env
}
