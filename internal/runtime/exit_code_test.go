// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"testing"
)

func TestExitCodeIsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "zero is valid", value: 0, wantValid: true},
		{name: "one is valid", value: 1, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			isValid, errs := tt.value.IsValid()
			if isValid != tt.wantValid {
				t.Errorf("ExitCode(%d).IsValid() = %v, want %v", tt.value, isValid, tt.wantValid)
			}
			if tt.wantValid {
				if len(errs) != 0 {
					t.Errorf("ExitCode(%d).IsValid() returned errors for valid value: %v", tt.value, errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatal("ExitCode.IsValid() returned no errors for invalid value")
			}
			if !errors.Is(errs[0], ErrInvalidExitCode) {
				t.Errorf("error does not wrap ErrInvalidExitCode: %v", errs[0])
			}
		})
	}
}

func TestResultErr(t *testing.T) {
	t.Parallel()

	if err := NewSuccessResult().Err(); err != nil {
		t.Errorf("success Err() = %v, want nil", err)
	}

	err := NewExitCodeResult(3).Err()
	if !errors.Is(err, ErrNonZeroExit) {
		t.Errorf("exit code Err() = %v, want ErrNonZeroExit", err)
	}
	if err.Error() != "exit status 3" {
		t.Errorf("exit code Err() message = %q", err.Error())
	}

	cause := errors.New("boom")
	if got := NewErrorResult(ExitFailure, cause).Err(); !errors.Is(got, cause) {
		t.Errorf("error Err() = %v, want %v", got, cause)
	}

	if NewExitCodeResult(2).Success() {
		t.Error("Success() = true for non-zero exit")
	}
}
