// SPDX-License-Identifier: MPL-2.0

// Package launcher bootstraps a Python build: it locates an interpreter,
// creates the virtual environment when it is missing, installs the
// dependency manifest, runs the build entry point with the environment
// active, and deactivates it again.
//
// Only the interpreter check can stop a run. Every later step runs exactly
// once whatever happened before it, and its outcome is recorded in a Report.
package launcher
