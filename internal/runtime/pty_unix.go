// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package runtime

import (
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// runWithPTY starts cmd attached to a pseudo-terminal and copies the
// terminal's output to inv.Stdout until the child exits. Input is forwarded
// only while the child runs; whatever arrives later waits for the next child.
func (r *ExecRunner) runWithPTY(cmd *exec.Cmd, inv Invocation) *Result {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return resultFromError(inv.Name, err)
	}

	if f, ok := inv.Stdout.(*os.File); ok {
		_ = pty.InheritSize(f, ptmx)
	}

	stop := make(chan struct{})
	forwarded := make(chan struct{})
	if inv.Stdin != nil {
		relay := r.stdinRelay(inv.Stdin)
		go func() {
			defer close(forwarded)
			relay.forward(ptmx, stop)
		}()
	} else {
		close(forwarded)
	}

	// Reading the master side fails with EIO once the child closes the
	// terminal; that is the normal end of output.
	_, _ = io.Copy(inv.Stdout, ptmx)
	waitErr := cmd.Wait()

	close(stop)
	_ = ptmx.Close()
	<-forwarded

	return resultFromError(inv.Name, waitErr)
}
