package rendering

import (
	"strings"
	"unicode"
)

// Filename returns the download name for a profile of name:
// "<name>_profile.pdf", or "profile_profile.pdf" when name is blank.
func Filename(name string) string {
	base := SafeFilename(name)
	if base == "" {
		base = "profile"
	}
	return base + "_profile.pdf"
}

// SafeFilename replaces characters that are unsafe in file names or
// Content-Disposition headers with underscores, and trims the result.
func SafeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(name))

	for _, r := range name {
		switch {
		case r == '/', r == '\\', r == ':', r == '*', r == '?', r == '"', r == '<', r == '>', r == '|':
			result.WriteRune('_')
		case r == ';', r == '\'':
			result.WriteRune('_')
		case unicode.IsControl(r):
			// dropped
		default:
			result.WriteRune(r)
		}
	}

	return strings.Trim(result.String(), " .")
}
