// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	goruntime "runtime"
	"strings"

	"github.com/pylaunch/pylaunch/pkg/platform"

	"github.com/Masterminds/semver/v3"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultEnvironmentDir is the virtual environment directory.
	DefaultEnvironmentDir = "venv"
	// DefaultManifest is the dependency manifest installed into the environment.
	DefaultManifest = "requirements.txt"
	// DefaultEntry is the build entry point.
	DefaultEntry = "build.py"
	// DefaultLogPrefix prefixes log file names.
	DefaultLogPrefix = "pylaunch"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the launcher configuration.
	Config struct {
		Interpreter  InterpreterConfig `json:"interpreter" mapstructure:"interpreter" yaml:"interpreter" toml:"interpreter"`
		Environment  EnvironmentConfig `json:"environment" mapstructure:"environment" yaml:"environment" toml:"environment"`
		Manifest     string            `json:"manifest" mapstructure:"manifest" yaml:"manifest" toml:"manifest"`
		Entry        string            `json:"entry" mapstructure:"entry" yaml:"entry" toml:"entry"`
		Workdir      string            `json:"workdir" mapstructure:"workdir" yaml:"workdir" toml:"workdir"`
		Strict       bool              `json:"strict" mapstructure:"strict" yaml:"strict" toml:"strict"`
		PauseOnError bool              `json:"pause_on_error" mapstructure:"pause_on_error" yaml:"pause_on_error" toml:"pause_on_error"`
		UI           UIConfig          `json:"ui" mapstructure:"ui" yaml:"ui" toml:"ui"`
		Log          LogConfig         `json:"log" mapstructure:"log" yaml:"log" toml:"log"`
	}

	// InterpreterConfig controls how the interpreter is located.
	InterpreterConfig struct {
		// Candidates are command strings tried in order.
		Candidates []string `json:"candidates" mapstructure:"candidates" yaml:"candidates" toml:"candidates"`
		// VersionArgs are appended to a candidate to query its version.
		VersionArgs []string `json:"version_args" mapstructure:"version_args" yaml:"version_args" toml:"version_args"`
		// MinVersion is an optional semantic version constraint.
		MinVersion string `json:"min_version" mapstructure:"min_version" yaml:"min_version,omitempty" toml:"min_version,omitempty"`
	}

	// EnvironmentConfig locates the isolated dependency environment.
	EnvironmentConfig struct {
		Dir string `json:"dir" mapstructure:"dir" yaml:"dir" toml:"dir"`
	}

	// UIConfig contains terminal presentation settings.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" yaml:"color_scheme" toml:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose" yaml:"verbose" toml:"verbose"`
		// PTY attaches the install and build steps to a pseudo-terminal.
		PTY bool `json:"pty" mapstructure:"pty" yaml:"pty" toml:"pty"`
	}

	// LogConfig controls the optional log file.
	LogConfig struct {
		// Dir enables file logging when non-empty.
		Dir    string `json:"dir" mapstructure:"dir" yaml:"dir" toml:"dir"`
		Prefix string `json:"prefix" mapstructure:"prefix" yaml:"prefix" toml:"prefix"`
	}
)

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Validate returns nil if the ColorScheme is recognized.
func (c ColorScheme) Validate() error {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: c}
	}
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultInterpreterCandidates returns the interpreter commands tried when
// none are configured. Windows installs usually expose the "py" launcher
// when "python" is not on PATH.
func DefaultInterpreterCandidates(goos string) []string {
	if goos == platform.Windows {
		return []string{"python", "py -3"}
	}
	return []string{"python", "python3"}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Interpreter: InterpreterConfig{
			Candidates:  DefaultInterpreterCandidates(goruntime.GOOS),
			VersionArgs: []string{"--version"},
		},
		Environment:  EnvironmentConfig{Dir: DefaultEnvironmentDir},
		Manifest:     DefaultManifest,
		Entry:        DefaultEntry,
		PauseOnError: true,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
		Log: LogConfig{
			Prefix: DefaultLogPrefix,
		},
	}
}

// Validate checks constraints the CUE schema cannot express, and guards
// configurations assembled in code. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Interpreter.Candidates) == 0 {
		errs = append(errs, errors.New("interpreter.candidates: at least one candidate is required"))
	}
	for i, cand := range c.Interpreter.Candidates {
		if strings.TrimSpace(cand) == "" {
			errs = append(errs, fmt.Errorf("interpreter.candidates[%d]: must not be blank", i))
		}
	}
	if c.Interpreter.MinVersion != "" {
		if _, err := semver.NewConstraint(c.Interpreter.MinVersion); err != nil {
			errs = append(errs, fmt.Errorf("interpreter.min_version: %w", err))
		}
	}
	if strings.TrimSpace(c.Environment.Dir) == "" {
		errs = append(errs, errors.New("environment.dir: must not be blank"))
	}
	if strings.TrimSpace(c.Manifest) == "" {
		errs = append(errs, errors.New("manifest: must not be blank"))
	}
	if strings.TrimSpace(c.Entry) == "" {
		errs = append(errs, errors.New("entry: must not be blank"))
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ui.color_scheme: %w", err))
	}

	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}
