// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the file given by --config, otherwise from
// ~/.config/pylaunch/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/pylaunch/config.cue on macOS,
// %APPDATA%\pylaunch\config.cue on Windows), otherwise from pylaunch.cue in
// the working directory. Without any file the defaults reproduce the
// launcher's zero-input behavior.
//
// Files are validated against an embedded CUE schema (config_schema.cue)
// before their values are merged over Viper's defaults.
package config
