// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"slices"
	"testing"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	env := func(name string) string {
		if name == "PYENV_ROOT" {
			return "/home/dev/.pyenv"
		}
		return ""
	}

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "single word", input: "python", want: []string{"python"}},
		{name: "launcher with flag", input: "py -3", want: []string{"py", "-3"}},
		{name: "quoted path", input: `"/opt/my python/bin/python3"`, want: []string{"/opt/my python/bin/python3"}},
		{name: "expansion", input: "$PYENV_ROOT/shims/python", want: []string{"/home/dev/.pyenv/shims/python"}},
		{name: "unset variable", input: "${MISSING}python3", want: []string{"python3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCommand(tt.input, env)
			if err != nil {
				t.Fatalf("ParseCommand(%q) error: %v", tt.input, err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseCommand(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseCommandEmpty(t *testing.T) {
	t.Parallel()

	_, err := ParseCommand("   ", nil)
	if !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("ParseCommand(blank) error = %v, want ErrEmptyCommand", err)
	}
}

func TestParseCommandUnbalancedQuote(t *testing.T) {
	t.Parallel()

	if _, err := ParseCommand(`"python`, nil); err == nil {
		t.Error("ParseCommand() expected error for unbalanced quote")
	}
}
