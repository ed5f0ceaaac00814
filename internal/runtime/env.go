// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	goruntime "runtime"
	"strings"

	"github.com/pylaunch/pylaunch/pkg/platform"
)

// envKeyEqual compares variable names the way the host does:
// case-insensitively on Windows, exactly elsewhere.
func envKeyEqual(a, b string) bool {
	if goruntime.GOOS == platform.Windows {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func splitEnv(kv string) (key, value string) {
	// Windows keeps per-drive working directories in variables such as
	// "=C:=C:\dir"; the leading '=' belongs to the name.
	if i := strings.Index(kv[min(1, len(kv)):], "="); i >= 0 {
		i += min(1, len(kv))
		return kv[:i], kv[i+1:]
	}
	return kv, ""
}

// EnvLookup returns the value of key in env.
func EnvLookup(env []string, key string) (string, bool) {
	for i := len(env) - 1; i >= 0; i-- {
		k, v := splitEnv(env[i])
		if envKeyEqual(k, key) {
			return v, true
		}
	}
	return "", false
}

// EnvSet returns a copy of env with key set to value. Earlier duplicates of
// key are removed so the result has a single definition.
func EnvSet(env []string, key, value string) []string {
	out := EnvUnset(env, key)
	return append(out, key+"="+value)
}

// EnvUnset returns a copy of env without any definition of key.
func EnvUnset(env []string, key string) []string {
	out := make([]string, 0, len(env))
	for _, kv := range env {
		k, _ := splitEnv(kv)
		if envKeyEqual(k, key) {
			continue
		}
		out = append(out, kv)
	}
	return out
}

// EnvDiff returns the KEY=VALUE entries of next that are absent from or
// differ in base. Removals are not reported.
func EnvDiff(base, next []string) []string {
	var diff []string
	for _, kv := range next {
		k, v := splitEnv(kv)
		if old, ok := EnvLookup(base, k); ok && old == v {
			continue
		}
		diff = append(diff, kv)
	}
	return diff
}
