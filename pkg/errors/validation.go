package errors

import (
	"slices"
	"strings"
	"unicode"
)

// MaxNameLength bounds city names accepted from user input.
const MaxNameLength = 256

// ValidateName validates a city name given on the command line or in a URL.
// Names must be non-empty, at most MaxNameLength bytes and free of control
// characters.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidInput, "city name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidInput, "city name too long (max %d characters)", MaxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "city name contains invalid control characters")
		}
	}

	return nil
}

// ValidateFormats checks that every requested output format is one of
// allowed. Comparison is case-sensitive.
func ValidateFormats(formats, allowed []string) error {
	for _, f := range formats {
		if !slices.Contains(allowed, f) {
			return New(ErrCodeInvalidFormat, "unsupported format %q (allowed: %s)", f, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
