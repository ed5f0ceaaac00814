// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// Issues are Markdown documents rendered with glamour when a failure needs
// more guidance than a one-line error. ActionableError carries the operation,
// resource, and remediation hints for errors returned up the call stack.
package issue
