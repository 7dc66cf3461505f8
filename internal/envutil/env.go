// Package envutil edits KEY=value environment slices.
package envutil

import (
	"fmt"
	"strings"
)

// PathKey is the canonical name of the executable search path variable.
const PathKey = "PATH"

// GetEnv returns the value for the key from an env slice.
func GetEnv(env []string, key string) (string, bool) {
	for _, entry := range env {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) == 2 && parts[0] == key {
			return parts[1], true
		}
	}
	return "", false
}

// SetEnv sets or appends a key=value entry in an env slice.
func SetEnv(env []string, key string, value string) []string {
	entry := fmt.Sprintf("%s=%s", key, value)
	for i, existing := range env {
		if strings.HasPrefix(existing, key+"=") {
			env[i] = entry
			return env
		}
	}
	return append(env, entry)
}

// UnsetEnv removes all entries for the given key from an env slice.
// If key is empty, it returns env unchanged.
func UnsetEnv(env []string, key string) []string {
	if key == "" {
		return env
	}
	prefix := key + "="
	result := make([]string, 0, len(env))
	for _, entry := range env {
		if !strings.HasPrefix(entry, prefix) {
			result = append(result, entry)
		}
	}
	return result
}

// LookupPath returns the search path from env. The variable name is matched
// case-insensitively because Windows environments spell it "Path".
// The first matching entry wins.
func LookupPath(env []string) (string, bool) {
	for _, entry := range env {
		key, value, ok := strings.Cut(entry, "=")
		if ok && strings.EqualFold(key, PathKey) {
			return value, true
		}
	}
	return "", false
}

// SetPath replaces every spelling of the search path variable with a single
// PATH entry holding value.
func SetPath(env []string, value string) []string {
	result := make([]string, 0, len(env)+1)
	for _, entry := range env {
		key, _, ok := strings.Cut(entry, "=")
		if ok && strings.EqualFold(key, PathKey) {
			continue
		}
		result = append(result, entry)
	}
	return append(result, PathKey+"="+value)
}
