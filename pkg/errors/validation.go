package errors

import (
	"strings"
	"unicode"
)

// maxItemIDLength bounds item identifiers; they end up in SVG ids and cache keys.
const maxItemIDLength = 256

// ValidateItemID validates a backlog item identifier.
//
// Identifiers are used as SVG element ids, DOT node names and map keys, so
// they must be non-empty, reasonably short and free of control characters.
func ValidateItemID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidItem, "item id cannot be empty")
	}

	if len(id) > maxItemIDLength {
		return New(ErrCodeInvalidItem, "item id too long (max %d characters)", maxItemIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItem, "item id %q contains control characters", id)
		}
	}

	return nil
}

// ValidatePath validates an input or output file path given on the command line.
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
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
