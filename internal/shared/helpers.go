// Package shared provides small helpers used across the chainlayout
// packages.
package shared

import (
	"fmt"
	"strings"
)

// NormalizeKeyword lowercases and trims a document keyword such as a
// compose source or a priority name.
func NormalizeKeyword(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	return fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err)
}
