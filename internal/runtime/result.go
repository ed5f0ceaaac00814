// SPDX-License-Identifier: MPL-2.0

package runtime

// Result is the outcome of running one Invocation.
type Result struct {
	// ExitCode is the child's exit status, or ExitFailure when Error is set.
	ExitCode ExitCode
	// Error is set when the child could not be started or waited for.
	// A child that ran and exited non-zero is not an error.
	Error error
	// Output holds captured stdout (Capture only).
	Output string
	// ErrOutput holds captured stderr (Capture only).
	ErrOutput string
}

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success reports whether the child started and exited with status 0.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}

// Err folds a non-zero exit status into an error, preserving Error when set.
func (r *Result) Err() error {
	if r.Error != nil {
		return r.Error
	}
	if !r.ExitCode.IsSuccess() {
		return &ExitStatusError{Code: r.ExitCode}
	}
	return nil
}
