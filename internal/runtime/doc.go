// SPDX-License-Identifier: MPL-2.0

// Package runtime runs the external processes the launcher delegates to.
//
// An Invocation describes one child process (argv, working directory,
// environment, I/O streams). A Runner executes it and reports a Result whose
// ExitCode carries the child's exit status; Result.Error is reserved for
// infrastructure failures such as a missing executable or a canceled context.
//
// ExecRunner is the production Runner. It can attach children to a
// pseudo-terminal and transparently hops out of Flatpak sandboxes so that
// host interpreters remain reachable. Resolver abstracts search-path lookup
// and ParseCommand turns configured command strings into argv.
package runtime
