package utils

import (
	"strings"
	"unicode"
)

// MaxLogStringLength defines the maximum length for provider-supplied
// strings (room titles, user names) in logs
const MaxLogStringLength = 200

// SanitizeLogString sanitizes a provider-controlled string for safe logging.
// Room titles and user names come from untrusted accounts, so control
// characters are stripped and the length is bounded.
func SanitizeLogString(input string) string {
	if input == "" {
		return ""
	}

	if len(input) > MaxLogStringLength {
		input = input[:MaxLogStringLength] + "... (truncated)"
	}

	input = strings.ReplaceAll(input, "\r\n", "\n")

	sanitized := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, input)

	// Escape format specifiers so sanitized values are inert in any
	// printf-style sink
	sanitized = strings.ReplaceAll(sanitized, "%", "%%")

	return sanitized
}
