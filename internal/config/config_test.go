// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	goruntime "runtime"
	"slices"
	"strings"
	"testing"

	"github.com/pylaunch/pylaunch/internal/issue"
	"github.com/pylaunch/pylaunch/internal/testutil"
	"github.com/pylaunch/pylaunch/pkg/platform"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Environment.Dir != "venv" {
		t.Errorf("expected default environment dir to be venv, got %s", cfg.Environment.Dir)
	}

	if cfg.Manifest != "requirements.txt" {
		t.Errorf("expected default manifest to be requirements.txt, got %s", cfg.Manifest)
	}

	if cfg.Entry != "build.py" {
		t.Errorf("expected default entry to be build.py, got %s", cfg.Entry)
	}

	if cfg.Interpreter.Candidates[0] != "python" {
		t.Errorf("expected python to be tried first, got %v", cfg.Interpreter.Candidates)
	}

	if !slices.Equal(cfg.Interpreter.VersionArgs, []string{"--version"}) {
		t.Errorf("expected --version probe, got %v", cfg.Interpreter.VersionArgs)
	}

	if cfg.Strict {
		t.Error("expected strict to be false by default")
	}

	if !cfg.PauseOnError {
		t.Error("expected pause_on_error to be true by default")
	}

	if cfg.Log.Dir != "" {
		t.Errorf("expected file logging to be disabled by default, got dir %q", cfg.Log.Dir)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestDefaultInterpreterCandidates(t *testing.T) {
	if got := DefaultInterpreterCandidates(platform.Windows); !slices.Equal(got, []string{"python", "py -3"}) {
		t.Errorf("windows candidates = %v", got)
	}
	if got := DefaultInterpreterCandidates(platform.Linux); !slices.Equal(got, []string{"python", "python3"}) {
		t.Errorf("linux candidates = %v", got)
	}
}

func TestConfigDir(t *testing.T) {
	if goruntime.GOOS != platform.Linux {
		t.Skip("XDG lookup only applies on Linux")
	}

	testXDGPath := filepath.Join(t.TempDir(), "xdg")
	t.Cleanup(testutil.MustSetenv(t, "XDG_CONFIG_HOME", testXDGPath))

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	expected := filepath.Join(testXDGPath, AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}
}

func TestConfigDirFallsBackToHome(t *testing.T) {
	if goruntime.GOOS != platform.Linux {
		t.Skip("XDG lookup only applies on Linux")
	}

	home := t.TempDir()
	t.Cleanup(testutil.MustUnsetenv(t, "XDG_CONFIG_HOME"))
	t.Cleanup(testutil.SetHomeDir(t, home))

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}
}

func TestConfigDirOverride(t *testing.T) {
	override := t.TempDir()
	SetConfigDirOverride(override)
	t.Cleanup(Reset)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}
	if dir != override {
		t.Errorf("ConfigDir() = %s, want %s", dir, override)
	}

	path, err := ConfigFilePath()
	if err != nil {
		t.Fatalf("ConfigFilePath() returned error: %v", err)
	}
	if path != filepath.Join(override, "config.cue") {
		t.Errorf("ConfigFilePath() = %s", path)
	}
}

// isolatedOptions points both lookup locations at empty temp directories.
func isolatedOptions(t *testing.T) LoadOptions {
	t.Helper()
	return LoadOptions{ConfigDirPath: t.TempDir(), WorkDir: t.TempDir()}
}

func TestLoadDefaultsWithoutFiles(t *testing.T) {
	loaded, err := NewProvider().Load(context.Background(), isolatedOptions(t))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if len(loaded.Paths) != 0 {
		t.Errorf("Load() paths = %q, want defaults", loaded.Paths)
	}
	if !reflect.DeepEqual(loaded.Config, DefaultConfig()) {
		t.Errorf("Load() = %+v, want defaults %+v", loaded.Config, DefaultConfig())
	}
}

func TestLoadUserConfigMergesOverDefaults(t *testing.T) {
	opts := isolatedOptions(t)
	userFile := filepath.Join(opts.ConfigDirPath, "config.cue")
	content := `
interpreter: candidates: ["python3.12"]
environment: dir: ".venv"
strict: true
ui: verbose: true
`
	if err := os.WriteFile(userFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	cfg := loaded.Config

	if !slices.Equal(loaded.Paths, []string{userFile}) {
		t.Errorf("Load() paths = %q, want [%q]", loaded.Paths, userFile)
	}
	if !slices.Equal(cfg.Interpreter.Candidates, []string{"python3.12"}) {
		t.Errorf("candidates = %v", cfg.Interpreter.Candidates)
	}
	if cfg.Environment.Dir != ".venv" {
		t.Errorf("environment.dir = %q", cfg.Environment.Dir)
	}
	if !cfg.Strict || !cfg.UI.Verbose {
		t.Errorf("strict/verbose not applied: %+v", cfg)
	}

	// Untouched fields keep their defaults.
	if cfg.Manifest != DefaultManifest || cfg.Entry != DefaultEntry {
		t.Errorf("manifest/entry = %q/%q, want defaults", cfg.Manifest, cfg.Entry)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("color_scheme = %q, want auto", cfg.UI.ColorScheme)
	}
	if !slices.Equal(cfg.Interpreter.VersionArgs, []string{"--version"}) {
		t.Errorf("version_args = %v, want default", cfg.Interpreter.VersionArgs)
	}
}

func TestLoadLocalConfig(t *testing.T) {
	opts := isolatedOptions(t)
	localFile := filepath.Join(opts.WorkDir, LocalConfigFile)
	if err := os.WriteFile(localFile, []byte(`entry: "tools/build.py"`), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !slices.Equal(loaded.Paths, []string{localFile}) {
		t.Errorf("Load() paths = %q, want [%q]", loaded.Paths, localFile)
	}
	if loaded.Config.Entry != "tools/build.py" {
		t.Errorf("entry = %q", loaded.Config.Entry)
	}
}

func TestLoadLocalConfigLayersOverUserConfig(t *testing.T) {
	opts := isolatedOptions(t)
	userFile := filepath.Join(opts.ConfigDirPath, "config.cue")
	localFile := filepath.Join(opts.WorkDir, LocalConfigFile)
	user := `
manifest: "user.txt"
interpreter: candidates: ["python3.11"]
ui: verbose: true
`
	local := `
manifest: "local.txt"
interpreter: min_version: ">= 3.9"
strict: true
`
	if err := os.WriteFile(userFile, []byte(user), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(localFile, []byte(local), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	cfg := loaded.Config

	if !slices.Equal(loaded.Paths, []string{userFile, localFile}) {
		t.Errorf("Load() paths = %q, want user then local", loaded.Paths)
	}
	if cfg.Manifest != "local.txt" {
		t.Errorf("manifest = %q, want local.txt", cfg.Manifest)
	}
	if !cfg.Strict {
		t.Error("strict from the project file was not applied")
	}
	// User settings the project file leaves alone survive, nested ones too.
	if !slices.Equal(cfg.Interpreter.Candidates, []string{"python3.11"}) || !cfg.UI.Verbose {
		t.Errorf("user settings lost: candidates=%v verbose=%v", cfg.Interpreter.Candidates, cfg.UI.Verbose)
	}
	if cfg.Interpreter.MinVersion != ">= 3.9" {
		t.Errorf("min_version = %q", cfg.Interpreter.MinVersion)
	}
}

func TestLoadExplicitFileReplacesLookup(t *testing.T) {
	opts := isolatedOptions(t)
	explicit := filepath.Join(t.TempDir(), "ci.cue")
	for path, content := range map[string]string{
		filepath.Join(opts.ConfigDirPath, "config.cue"): `entry: "user.py"`,
		filepath.Join(opts.WorkDir, LocalConfigFile):    `manifest: "local.txt"`,
		explicit: `strict: true`,
	} {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	opts.ConfigFilePath = explicit

	loaded, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if !slices.Equal(loaded.Paths, []string{explicit}) {
		t.Errorf("Load() paths = %q, want only %q", loaded.Paths, explicit)
	}
	cfg := loaded.Config
	if !cfg.Strict || cfg.Entry != DefaultEntry || cfg.Manifest != DefaultManifest {
		t.Errorf("explicit file not used alone: %+v", cfg)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	opts := isolatedOptions(t)
	opts.ConfigFilePath = filepath.Join(t.TempDir(), "nope.cue")

	_, err := NewProvider().Load(context.Background(), opts)
	if err == nil {
		t.Fatal("Load() expected error for missing explicit config")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Load() error = %T, want *issue.ActionableError", err)
	}
	if !ae.HasSuggestions() {
		t.Error("expected suggestions on missing config error")
	}
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{name: "unknown color scheme", content: `ui: color_scheme: "neon"`, wantMsg: "color_scheme"},
		{name: "unknown field", content: `interpeter: {}`, wantMsg: "interpeter"},
		{name: "empty candidates", content: `interpreter: candidates: []`, wantMsg: "candidates"},
		{name: "wrong type", content: `strict: "yes"`, wantMsg: "strict"},
		{name: "bad log prefix", content: `log: prefix: "a b"`, wantMsg: "prefix"},
		{name: "bad version constraint", content: `interpreter: min_version: "three-ish"`, wantMsg: "min_version"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := isolatedOptions(t)
			opts.ConfigFilePath = filepath.Join(t.TempDir(), "bad.cue")
			if err := os.WriteFile(opts.ConfigFilePath, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := NewProvider().Load(context.Background(), opts)
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Load() error = %q, want mention of %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewProvider().Load(ctx, isolatedOptions(t)); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestGeneratedCUEIsLoadable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Interpreter.MinVersion = ">= 3.9"
	cfg.Log.Dir = `C:\logs`
	cfg.Strict = true

	opts := isolatedOptions(t)
	opts.ConfigFilePath = filepath.Join(t.TempDir(), "gen.cue")
	if err := os.WriteFile(opts.ConfigFilePath, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("generated CUE failed to load: %v", err)
	}
	if !reflect.DeepEqual(loaded.Config, cfg) {
		t.Errorf("loaded = %+v, want %+v", loaded.Config, cfg)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	SetConfigDirOverride(filepath.Join(t.TempDir(), "pylaunch"))
	t.Cleanup(Reset)

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	// An existing file is left alone.
	if err := os.WriteFile(path, []byte("strict: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateDefaultConfig(); err != nil {
		t.Fatalf("second CreateDefaultConfig() error: %v", err)
	}
	second, _ := os.ReadFile(path)
	if string(second) != "strict: true\n" {
		t.Error("CreateDefaultConfig() overwrote an existing file")
	}
	if !strings.Contains(string(first), "environment") {
		t.Errorf("default config content unexpected:\n%s", first)
	}
}
