// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"os/exec"
	"testing"
)

func TestResultSuccessAndErr(t *testing.T) {
	t.Parallel()

	spawnErr := &exec.Error{Name: "python", Err: exec.ErrNotFound}

	tests := []struct {
		name        string
		result      *Result
		wantSuccess bool
		wantErr     error
		wantCode    ExitCode
		wantMsg     string
	}{
		{
			name:        "clean exit",
			result:      NewSuccessResult(),
			wantSuccess: true,
		},
		{
			name:     "non-zero exit becomes an exit status error",
			result:   NewExitCodeResult(3),
			wantErr:  ErrNonZeroExit,
			wantCode: 3,
			wantMsg:  "exit status 3",
		},
		{
			name:    "spawn failure keeps the original error",
			result:  NewErrorResult(ExitFailure, spawnErr),
			wantErr: exec.ErrNotFound,
			wantMsg: spawnErr.Error(),
		},
		{
			name:    "error with zero code is still a failure",
			result:  NewErrorResult(ExitSuccess, spawnErr),
			wantErr: exec.ErrNotFound,
			wantMsg: spawnErr.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.result.Success(); got != tt.wantSuccess {
				t.Errorf("Success() = %v, want %v", got, tt.wantSuccess)
			}

			err := tt.result.Err()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Err() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Err() = %v, want it to wrap %v", err, tt.wantErr)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Err().Error() = %q, want %q", err.Error(), tt.wantMsg)
			}

			var exitErr *ExitStatusError
			isExit := errors.As(err, &exitErr)
			if isExit != (tt.wantCode != 0) {
				t.Fatalf("errors.As(*ExitStatusError) = %v, want %v", isExit, tt.wantCode != 0)
			}
			if isExit && exitErr.Code != tt.wantCode {
				t.Errorf("ExitStatusError.Code = %d, want %d", exitErr.Code, tt.wantCode)
			}
		})
	}
}

func TestResultErrDoesNotTreatSpawnFailureAsExitStatus(t *testing.T) {
	t.Parallel()

	err := NewErrorResult(ExitFailure, errors.New("fork failed")).Err()
	if errors.Is(err, ErrNonZeroExit) {
		t.Errorf("Err() = %v, spawn failures must not wrap ErrNonZeroExit", err)
	}
}
