// SPDX-License-Identifier: MPL-2.0

// Package logging builds the launcher's structured logger and the optional
// timestamped log file that mirrors both log records and child output.
package logging
