package errors

import (
	"strconv"
	"strings"
	"unicode"
)

// ValidateRepeatCount parses and validates a user-supplied repeat count.
// Repeat counts must be positive integers; anything else is INVALID_INPUT.
func ValidateRepeatCount(axis, input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, New(ErrCodeInvalidInput, "%s repeat count cannot be empty", axis)
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, New(ErrCodeInvalidInput, "%s repeat count %q is not an integer", axis, trimmed)
	}
	if n < 1 {
		return 0, New(ErrCodeInvalidInput, "%s repeat count must be positive, got %d", axis, n)
	}
	return n, nil
}

// ValidateArchivePath validates a user-supplied archive path.
// It rejects empty paths, control characters, and non-zip extensions.
func ValidateArchivePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "archive path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "archive path contains invalid characters")
		}
	}

	if !strings.HasSuffix(strings.ToLower(path), ".zip") {
		return New(ErrCodeInvalidInput, "archive must be a .zip file: %s", path)
	}

	return nil
}

// ValidateEntryPath validates a path found inside a zip archive before it is
// joined with the extraction directory. It prevents path traversal out of the
// working directory (zip-slip).
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateEntryPath(path string) error {
	if path == "" {
		return New(ErrCodeArchive, "archive entry path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeArchive, "archive entry path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeArchive, "archive entry path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeArchive, "archive entry path must be relative: %s", path)
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeArchive, "archive entry path cannot contain traversal sequences: %s", path)
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeArchive, "archive entry path cannot contain backslashes: %s", path)
	}

	return nil
}
