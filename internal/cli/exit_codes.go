package cli

import "fmt"

// Exit codes for the may CLI. Machine consumers (CI gates) rely solely
// on these, never on message text.
const (
	// ExitSuccess indicates the check passed.
	ExitSuccess = 0

	// ExitToolFailure indicates the tool itself failed (bad arguments,
	// unreadable config, I/O errors), distinct from validation outcomes.
	ExitToolFailure = 1

	// ExitMissingRequired indicates a change package was required for
	// this run and none was present.
	ExitMissingRequired = 2

	// ExitValidationFailed indicates at least one discovered change
	// package is invalid.
	ExitValidationFailed = 3
)

// exitError carries an exit code through cobra's RunE error path.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// ExitCode returns the process exit code for an error returned by
// Execute. Structured tool errors and anything unexpected map to
// ExitToolFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if e, ok := err.(*exitError); ok {
		return e.code
	}
	return ExitToolFailure
}
