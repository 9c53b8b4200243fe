// Package env reads raw environment variables for the few lookups that
// happen before config is loaded. Everything else goes through pkg/config.
package env

import "os"

// Get returns the variable's value, or fallback when unset or empty.
func Get(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
