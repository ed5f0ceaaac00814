// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	goruntime "runtime"
	"slices"
	"strings"

	"github.com/pylaunch/pylaunch/internal/issue"
	"github.com/pylaunch/pylaunch/pkg/cueutil"
	"github.com/pylaunch/pylaunch/pkg/platform"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "pylaunch"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalConfigFile is the project-local config file looked up in the working directory.
	LocalConfigFile = AppName + "." + ConfigFileExt
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the pylaunch configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch goruntime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the path of the user config file.
//
//nolint:revive // mirrors ConfigDir
func ConfigFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load reads configuration with default options.
func Load(ctx context.Context) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, LoadOptions{})
	return cfg, err
}

// loadWithOptions performs option-driven config loading. It returns the
// configuration and the files merged into it, least specific first.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, []string, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	paths, err := resolveConfigPaths(opts)
	if err != nil {
		return nil, nil, err
	}

	for _, path := range paths {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestions(
					"Check that the file contains valid CUE syntax",
					"Verify the configuration values match the expected schema",
					"Run 'pylaunch config dump' to see a valid configuration",
				).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(strings.Join(paths, ", ")).
			WithIssue(issue.ConfigLoadFailedId).
			WithSuggestion("Fix the listed fields or remove them to fall back to defaults").
			Wrap(err).
			BuildError()
	}

	return &cfg, paths, nil
}

// resolveConfigPaths lists the config files to merge over the defaults. An
// explicit path (which must exist) is used alone. Otherwise the user config
// file comes first and the project-local file last, so project settings win.
func resolveConfigPaths(opts LoadOptions) ([]string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestions(
					"Verify the file path is correct",
					"Check that the file exists and is readable",
					"Use 'pylaunch config show' to see the default configuration",
				).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return []string{opts.ConfigFilePath}, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return nil, err
	}

	var paths []string
	if userPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt); fileExists(userPath) {
		paths = append(paths, userPath)
	}

	localPath := LocalConfigFile
	if opts.WorkDir != "" {
		localPath = filepath.Join(opts.WorkDir, LocalConfigFile)
	}
	if fileExists(localPath) && !slices.Contains(paths, localPath) {
		paths = append(paths, localPath)
	}

	return paths, nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("interpreter.candidates", defaults.Interpreter.Candidates)
	v.SetDefault("interpreter.version_args", defaults.Interpreter.VersionArgs)
	v.SetDefault("interpreter.min_version", defaults.Interpreter.MinVersion)
	v.SetDefault("environment.dir", defaults.Environment.Dir)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("entry", defaults.Entry)
	v.SetDefault("workdir", defaults.Workdir)
	v.SetDefault("strict", defaults.Strict)
	v.SetDefault("pause_on_error", defaults.PauseOnError)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.pty", defaults.UI.PTY)
	v.SetDefault("log.dir", defaults.Log.Dir)
	v.SetDefault("log.prefix", defaults.Log.Prefix)
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against the #Config schema and
// merges its contents into Viper, on top of the defaults.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	unified, err := cueutil.Validate(configSchema, data, "#Config", path)
	if err != nil {
		return err
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to the user config
// file unless one already exists. It returns the file path.
func CreateDefaultConfig() (string, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}
