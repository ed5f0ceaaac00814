// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"strings"
)

const (
	// posixExecutablesDir is where a virtual environment keeps its executables on POSIX hosts.
	posixExecutablesDir = "bin"
	// windowsExecutablesDir is where a virtual environment keeps its executables on Windows.
	windowsExecutablesDir = "Scripts"
	// windowsExeSuffix is appended to executable names on Windows.
	windowsExeSuffix = ".exe"
)

// ExecutablesDir returns the name of the executables directory inside a
// virtual environment for the given GOOS.
func ExecutablesDir(goos string) string {
	if goos == Windows {
		return windowsExecutablesDir
	}
	return posixExecutablesDir
}

// ExecutableName returns name with the platform executable suffix applied.
// Names that already carry the suffix are returned unchanged.
func ExecutableName(name, goos string) string {
	if goos != Windows || strings.HasSuffix(strings.ToLower(name), windowsExeSuffix) {
		return name
	}
	return name + windowsExeSuffix
}

// EnvironmentExecutable joins an environment root, its executables directory
// and an executable name for the given GOOS.
func EnvironmentExecutable(root, name, goos string) string {
	return filepath.Join(root, ExecutablesDir(goos), ExecutableName(name, goos))
}
