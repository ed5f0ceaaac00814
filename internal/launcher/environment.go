// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/pylaunch/pylaunch/internal/runtime"
	"github.com/pylaunch/pylaunch/pkg/platform"
)

const (
	envVirtualEnv = "VIRTUAL_ENV"
	envPath       = "PATH"
	envPythonHome = "PYTHONHOME"
)

type (
	// Environment is the layout of a virtual environment.
	Environment struct {
		// Dir is the directory as configured, relative to the working directory
		// unless absolute.
		Dir string
		// Root is the absolute environment directory.
		Root string
		// BinDir holds the environment's executables ("bin" or "Scripts").
		BinDir string
		// Python is the environment-local interpreter.
		Python string
	}

	// Activation overlays an Environment onto a base process environment,
	// the way the environment's activate script would.
	Activation struct {
		env    Environment
		base   []string
		active bool
	}
)

// NewEnvironment computes the layout of dir, resolved against workdir,
// for the given GOOS.
func NewEnvironment(workdir, dir, goos string) Environment {
	root := dir
	if !filepath.IsAbs(root) {
		root = filepath.Join(workdir, dir)
	}
	return Environment{
		Dir:    dir,
		Root:   root,
		BinDir: filepath.Join(root, platform.ExecutablesDir(goos)),
		Python: platform.EnvironmentExecutable(root, "python", goos),
	}
}

// Exists reports whether the environment directory is present. Anything at
// the path counts; the launcher never repairs or replaces it.
func (e Environment) Exists() bool {
	_, err := os.Stat(e.Root)
	return err == nil
}

// Activate returns an active overlay of e on base.
func (e Environment) Activate(base []string) *Activation {
	return &Activation{env: e, base: slices.Clone(base), active: true}
}

// Active reports whether the overlay is applied.
func (a *Activation) Active() bool {
	return a.active
}

// Deactivate drops the overlay. The environment directory is left in place.
func (a *Activation) Deactivate() {
	a.active = false
}

// Environ returns the child process environment: the base environment with
// VIRTUAL_ENV set, the executables directory first on PATH and PYTHONHOME
// removed while active, and the base environment unchanged otherwise.
func (a *Activation) Environ() []string {
	if !a.active {
		return slices.Clone(a.base)
	}

	env := runtime.EnvUnset(a.base, envPythonHome)
	env = runtime.EnvSet(env, envVirtualEnv, a.env.Root)

	path := a.env.BinDir
	if old, ok := runtime.EnvLookup(a.base, envPath); ok && old != "" {
		path += string(os.PathListSeparator) + old
	}
	return runtime.EnvSet(env, envPath, path)
}
