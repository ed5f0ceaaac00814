// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak SandboxType = "flatpak"

	// flatpakInfoPath is present inside every Flatpak sandbox.
	flatpakInfoPath = "/.flatpak-info"
)

// detectOnce caches the sandbox detection result for the lifetime of the process.
// detectSandboxFrom must not panic: sync.OnceValue re-raises a panic on every call.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(statFile)
})

// SandboxType identifies the type of application sandbox, if any.
type SandboxType string

// DetectSandbox returns the sandbox the current process runs in.
func DetectSandbox() SandboxType {
	return detectOnce()
}

// HostSpawnPrefix returns the argv prefix needed to run a host executable
// from inside the given sandbox, or nil when no prefix is required.
//
// Interpreters and their environments live on the host, so a sandboxed
// launcher has to hop out of the sandbox for every child it starts.
func HostSpawnPrefix(st SandboxType) []string {
	switch st {
	case SandboxFlatpak:
		return []string{"flatpak-spawn", "--host"}
	default:
		return nil
	}
}

func detectSandboxFrom(statFile func(string) error) SandboxType {
	if err := statFile(flatpakInfoPath); err == nil {
		return SandboxFlatpak
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
