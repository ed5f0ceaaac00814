// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"io"
	"os"

	"golang.org/x/term"
)

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
