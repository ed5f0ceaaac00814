// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions defines explicit configuration loading inputs.
	LoadOptions struct {
		// ConfigFilePath forces loading from a specific config file when set.
		ConfigFilePath string
		// ConfigDirPath overrides the config directory lookup when set.
		ConfigDirPath string
		// WorkDir is where the project-local pylaunch.cue is looked up.
		// Empty means the process working directory.
		WorkDir string
	}

	// Loaded is a configuration together with the files it was read from.
	Loaded struct {
		Config *Config
		// Paths lists the merged files, least specific first. Empty means
		// only defaults were used.
		Paths []string
	}

	// Provider loads configuration from explicit options.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (Loaded, error)
	}

	fileProvider struct{}
)

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (Loaded, error) {
	cfg, paths, err := loadWithOptions(ctx, opts)
	if err != nil {
		return Loaded{}, err
	}

	return Loaded{Config: cfg, Paths: paths}, nil
}
