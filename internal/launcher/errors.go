// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/pylaunch/pylaunch/internal/issue"
	"github.com/pylaunch/pylaunch/internal/runtime"
)

var (
	// ErrMissingInterpreter is returned when no interpreter candidate is usable.
	ErrMissingInterpreter = errors.New("python is not installed or not in PATH")
	// ErrStepFailed is wrapped by every StepError.
	ErrStepFailed = errors.New("step failed")
	// ErrVersionRejected marks a candidate whose version fails min_version.
	ErrVersionRejected = errors.New("version rejected")
	// ErrVersionUnknown marks a candidate whose version could not be parsed.
	ErrVersionUnknown = errors.New("version unknown")
)

type (
	// CandidateFailure explains why one interpreter candidate was not used.
	CandidateFailure struct {
		Candidate string
		Err       error
	}

	// MissingInterpreterError is returned when every candidate failed.
	MissingInterpreterError struct {
		Candidates []CandidateFailure
	}

	// VersionRejectedError reports an interpreter older (or newer) than allowed.
	VersionRejectedError struct {
		Version    *semver.Version
		Constraint string
	}

	// StepError describes a failed pipeline step.
	StepError struct {
		Step     Step
		ExitCode runtime.ExitCode
		Err      error
	}
)

func (e *MissingInterpreterError) Error() string {
	if len(e.Candidates) == 0 {
		return ErrMissingInterpreter.Error() + ": no candidates configured"
	}
	parts := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		parts[i] = fmt.Sprintf("%s: %v", c.Candidate, c.Err)
	}
	return ErrMissingInterpreter.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *MissingInterpreterError) Unwrap() error { return ErrMissingInterpreter }

func (e *VersionRejectedError) Error() string {
	return fmt.Sprintf("version %s does not satisfy %q", e.Version, e.Constraint)
}

func (e *VersionRejectedError) Unwrap() error { return ErrVersionRejected }

func (e *StepError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed with exit status %d", e.Step, e.ExitCode)
	}
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStepFailed}
	}
	return []error{ErrStepFailed, e.Err}
}

// Issue returns the guide matching the failure.
func (e *StepError) Issue() issue.Id {
	if errors.Is(e.Err, fs.ErrPermission) {
		return issue.PermissionDeniedId
	}
	switch e.Step {
	case StepProvision:
		return issue.EnvironmentCreateFailedId
	case StepInstall:
		return issue.InstallFailedId
	default:
		return issue.BuildScriptFailedId
	}
}

// missingInterpreter wraps err with user-facing context.
func missingInterpreter(err *MissingInterpreterError) error {
	return issue.NewErrorContext().
		WithOperation("locate a Python interpreter").
		WithIssue(issue.InterpreterNotFoundId).
		WithSuggestions(
			"Install Python 3 and make sure it is on your PATH",
			"Set interpreter.candidates in your pylaunch configuration",
		).
		Wrap(err).
		BuildError()
}
