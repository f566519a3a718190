// Package env reads raw process environment values that must be available
// before the envconfig-backed config is loaded (the logger bootstraps first).
package env

import "os"

// Get looks up key in the process environment, falling back when it is unset
// or empty.
func Get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
