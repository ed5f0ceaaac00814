// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE validation helpers.
//
// Validation follows a three-step pattern:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with a schema definition
//  3. Validate the result and report errors with JSON-path prefixes
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema string
//
//	value, err := cueutil.Validate(schema, data, "#Config", "pylaunch.cue")
//	if err != nil {
//	    return err // <file>: <path>: <message>
//	}
package cueutil
