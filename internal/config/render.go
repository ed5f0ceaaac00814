// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	// FormatCUE renders configuration as a CUE file accepted by Load.
	FormatCUE Format = "cue"
	// FormatYAML renders configuration as YAML.
	FormatYAML Format = "yaml"
	// FormatTOML renders configuration as TOML.
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for unsupported render formats.
var ErrUnknownFormat = errors.New("unknown format")

// Format names a configuration rendering.
type Format string

// Formats lists the supported render formats.
func Formats() []Format {
	return []Format{FormatCUE, FormatYAML, FormatTOML}
}

// Render serializes cfg in the requested format.
func Render(cfg *Config, format Format) (string, error) {
	switch format {
	case FormatCUE, "":
		return GenerateCUE(cfg), nil
	case FormatYAML:
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("render yaml: %w", err)
		}
		return string(out), nil
	case FormatTOML:
		out, err := toml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("render toml: %w", err)
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("%w %q (valid: cue, yaml, toml)", ErrUnknownFormat, format)
	}
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// pylaunch configuration\n")
	sb.WriteString("// Remove a field to fall back to its default.\n\n")

	sb.WriteString("interpreter: {\n")
	fmt.Fprintf(&sb, "\tcandidates: %s\n", cueStringList(cfg.Interpreter.Candidates))
	fmt.Fprintf(&sb, "\tversion_args: %s\n", cueStringList(cfg.Interpreter.VersionArgs))
	if cfg.Interpreter.MinVersion != "" {
		fmt.Fprintf(&sb, "\tmin_version: %q\n", cfg.Interpreter.MinVersion)
	}
	sb.WriteString("}\n\n")

	sb.WriteString("environment: {\n")
	fmt.Fprintf(&sb, "\tdir: %q\n", cfg.Environment.Dir)
	sb.WriteString("}\n\n")

	fmt.Fprintf(&sb, "manifest: %q\n", cfg.Manifest)
	fmt.Fprintf(&sb, "entry: %q\n", cfg.Entry)
	fmt.Fprintf(&sb, "workdir: %q\n", cfg.Workdir)
	fmt.Fprintf(&sb, "strict: %v\n", cfg.Strict)
	fmt.Fprintf(&sb, "pause_on_error: %v\n", cfg.PauseOnError)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tpty: %v\n", cfg.UI.PTY)
	sb.WriteString("}\n")

	sb.WriteString("\nlog: {\n")
	fmt.Fprintf(&sb, "\tdir: %q\n", cfg.Log.Dir)
	fmt.Fprintf(&sb, "\tprefix: %q\n", cfg.Log.Prefix)
	sb.WriteString("}\n")

	return sb.String()
}

func cueStringList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
