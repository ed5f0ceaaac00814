// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestExecutablesDir(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{Linux, "bin"},
		{Darwin, "bin"},
		{Windows, "Scripts"},
		{"freebsd", "bin"},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			if got := ExecutablesDir(tt.goos); got != tt.want {
				t.Errorf("ExecutablesDir(%q) = %q, want %q", tt.goos, got, tt.want)
			}
		})
	}
}

func TestExecutableName(t *testing.T) {
	tests := []struct {
		name string
		goos string
		want string
	}{
		{"python", Linux, "python"},
		{"python", Windows, "python.exe"},
		{"python.exe", Windows, "python.exe"},
		{"Python.EXE", Windows, "Python.EXE"},
		{"pip", Darwin, "pip"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.goos, func(t *testing.T) {
			if got := ExecutableName(tt.name, tt.goos); got != tt.want {
				t.Errorf("ExecutableName(%q, %q) = %q, want %q", tt.name, tt.goos, got, tt.want)
			}
		})
	}
}

func TestEnvironmentExecutable(t *testing.T) {
	got := EnvironmentExecutable("venv", "python", Windows)
	want := filepath.Join("venv", "Scripts", "python.exe")
	if got != want {
		t.Errorf("EnvironmentExecutable() = %q, want %q", got, want)
	}

	got = EnvironmentExecutable("venv", "python", Linux)
	want = filepath.Join("venv", "bin", "python")
	if got != want {
		t.Errorf("EnvironmentExecutable() = %q, want %q", got, want)
	}
}

func TestDetectSandboxFrom(t *testing.T) {
	found := func(string) error { return nil }
	missing := func(string) error { return os.ErrNotExist }
	broken := func(string) error { return errors.New("permission denied") }

	if got := detectSandboxFrom(found); got != SandboxFlatpak {
		t.Errorf("detectSandboxFrom(found) = %q, want %q", got, SandboxFlatpak)
	}
	if got := detectSandboxFrom(missing); got != SandboxNone {
		t.Errorf("detectSandboxFrom(missing) = %q, want none", got)
	}
	if got := detectSandboxFrom(broken); got != SandboxNone {
		t.Errorf("detectSandboxFrom(broken) = %q, want none", got)
	}
}

func TestHostSpawnPrefix(t *testing.T) {
	if got := HostSpawnPrefix(SandboxNone); got != nil {
		t.Errorf("HostSpawnPrefix(none) = %v, want nil", got)
	}
	want := []string{"flatpak-spawn", "--host"}
	if got := HostSpawnPrefix(SandboxFlatpak); !slices.Equal(got, want) {
		t.Errorf("HostSpawnPrefix(flatpak) = %v, want %v", got, want)
	}
}
