// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform conventions used by the launcher.
//
// It centralizes GOOS names, the on-disk layout of isolated interpreter
// environments (bin vs Scripts, .exe suffixes), and detection of application
// sandboxes whose processes must be spawned on the host.
package platform
