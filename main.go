// SPDX-License-Identifier: MPL-2.0

// pylaunch bootstraps a Python project's virtual environment and runs its
// build script.
package main

import cmd "github.com/pylaunch/pylaunch/cmd/pylaunch"

func main() {
	cmd.Execute()
}
