// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the pylaunch command tree.
//
// Running pylaunch without a subcommand bootstraps the project in the
// working directory: it checks for Python, creates the virtual environment
// if needed, installs requirements and runs the build script.
package cmd
