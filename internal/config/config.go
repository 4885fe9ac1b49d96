package config

import (
	"os"
	"strings"
)

// Get returns the environment value for key, or fallback when it is unset
// or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
