// SPDX-License-Identifier: MPL-2.0

//go:build windows

package runtime

import "os/exec"

// runWithPTY falls back to plain pipes; console children already see a terminal.
func (r *ExecRunner) runWithPTY(cmd *exec.Cmd, inv Invocation) *Result {
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr
	return resultFromError(inv.Name, cmd.Run())
}
