// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"
)

// ErrNonZeroExit is the sentinel error wrapped by ExitStatusError.
var ErrNonZeroExit = errors.New("process exited with non-zero status")

// ExitStatusError reports a child process that ran to completion with a
// non-zero exit status.
type ExitStatusError struct {
	Code ExitCode
}

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns ErrNonZeroExit for errors.Is compatibility.
func (e *ExitStatusError) Unwrap() error { return ErrNonZeroExit }
