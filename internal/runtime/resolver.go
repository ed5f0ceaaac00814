// SPDX-License-Identifier: MPL-2.0

package runtime

import "os/exec"

type (
	// Resolver locates executables on the search path.
	Resolver interface {
		LookPath(name string) (string, error)
	}

	// PathResolver resolves executables with exec.LookPath.
	PathResolver struct{}
)

// LookPath implements Resolver.
func (PathResolver) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
