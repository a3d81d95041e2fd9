package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// xrefRegex matches GEDCOM cross-reference identifiers without the
// surrounding @-delimiters, e.g. "I1" or "F12".
var xrefRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateXref validates a GEDCOM cross-reference identifier.
// The surrounding @-delimiters must already be stripped.
func ValidateXref(xref string) error {
	if xref == "" {
		return New(ErrCodeInvalidXref, "xref cannot be empty")
	}
	if len(xref) > 64 {
		return New(ErrCodeInvalidXref, "xref too long (max 64 characters)")
	}
	if !xrefRegex.MatchString(xref) {
		return New(ErrCodeInvalidXref, "invalid xref: %q", xref)
	}
	return nil
}

// ValidateThemeName validates a theme name used to resolve theme files.
// It rejects names that could be used for path traversal.
func ValidateThemeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTheme, "theme name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidTheme, "theme name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTheme, "theme name contains control characters")
		}
	}
	for _, pattern := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidTheme, "theme name contains invalid sequence: %q", pattern)
		}
	}
	return nil
}
