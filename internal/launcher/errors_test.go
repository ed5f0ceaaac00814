// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"

	"github.com/pylaunch/pylaunch/internal/issue"
	"github.com/pylaunch/pylaunch/internal/runtime"
)

func TestMissingInterpreterErrorMessage(t *testing.T) {
	t.Parallel()

	err := &MissingInterpreterError{Candidates: []CandidateFailure{
		{Candidate: "python", Err: errors.New("not found")},
		{Candidate: "python3", Err: &VersionRejectedError{Version: semver.MustParse("3.8.10"), Constraint: ">= 3.9"}},
	}}

	msg := err.Error()
	for _, want := range []string{"not in PATH", "python: not found", `python3: version 3.8.10 does not satisfy ">= 3.9"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
	if !errors.Is(err, ErrMissingInterpreter) {
		t.Error("errors.Is(ErrMissingInterpreter) = false")
	}
	if !errors.Is(err.Candidates[1].Err, ErrVersionRejected) {
		t.Error("VersionRejectedError should unwrap to ErrVersionRejected")
	}
}

func TestStepErrorIssue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  *StepError
		want issue.Id
	}{
		{&StepError{Step: StepProvision, ExitCode: 1}, issue.EnvironmentCreateFailedId},
		{&StepError{Step: StepInstall, ExitCode: 1}, issue.InstallFailedId},
		{&StepError{Step: StepInvoke, ExitCode: 2}, issue.BuildScriptFailedId},
		{&StepError{Step: StepInstall, ExitCode: runtime.ExitFailure, Err: errors.Join(errors.New("exec"), fs.ErrPermission)}, issue.PermissionDeniedId},
	}

	for _, tt := range tests {
		if got := tt.err.Issue(); got != tt.want {
			t.Errorf("%v: Issue() = %d, want %d", tt.err, got, tt.want)
		}
		if !errors.Is(tt.err, ErrStepFailed) {
			t.Errorf("%v: errors.Is(ErrStepFailed) = false", tt.err)
		}
	}
}

func TestStepErrorMessage(t *testing.T) {
	t.Parallel()

	if got := (&StepError{Step: StepInvoke, ExitCode: 3}).Error(); got != "invoke failed with exit status 3" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&StepError{Step: StepInstall, Err: errors.New("boom")}).Error(); got != "install failed: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		banner string
		want   string
	}{
		{"Python 3.12.1", "3.12.1"},
		{"Python 3.13.0rc1", "3.13.0"},
		{"Python 2.7", "2.7.0"},
		{"PyPy", ""},
		{"", ""},
	}

	for _, tt := range tests {
		v := parseVersion(tt.banner)
		got := ""
		if v != nil {
			got = v.String()
		}
		if got != tt.want {
			t.Errorf("parseVersion(%q) = %q, want %q", tt.banner, got, tt.want)
		}
	}
}

func TestReportExitCode(t *testing.T) {
	t.Parallel()

	r := &Report{Outcomes: []StepOutcome{
		{Step: StepProbe, Status: StatusOK},
		{Step: StepInstall, Status: StatusFailed, ExitCode: runtime.ExitSuccess},
		{Step: StepInvoke, Status: StatusFailed, ExitCode: 5},
	}}

	if got := r.exitCode(false); got != runtime.ExitSuccess {
		t.Errorf("non-strict exit = %d, want 0", got)
	}
	// A failure without a child status maps to 1.
	if got := r.exitCode(true); got != runtime.ExitFailure {
		t.Errorf("strict exit = %d, want 1", got)
	}
	if _, ok := r.Outcome(StepProvision); ok {
		t.Error("Outcome() found a step that was never recorded")
	}
}
