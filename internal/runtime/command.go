// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"fmt"

	"mvdan.cc/sh/v3/shell"
)

// ErrEmptyCommand is returned when a command string has no words.
var ErrEmptyCommand = errors.New("empty command")

// ParseCommand splits a configured command string such as `py -3` or
// `"$PYENV_ROOT/shims/python"` into argv. Quoting follows POSIX shell rules
// and parameter expansion uses env; command substitution is rejected.
// A nil env expands every variable to the empty string.
func ParseCommand(s string, env func(string) string) ([]string, error) {
	if env == nil {
		env = func(string) string { return "" }
	}

	fields, err := shell.Fields(s, env)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", s, err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("parse command %q: %w", s, ErrEmptyCommand)
	}

	return fields, nil
}
