package security

import (
	"errors"
	"strings"
	"unicode"
)

const (
	// MaxUserIDLength bounds identifiers accepted from request paths and forms
	MaxUserIDLength = 128
)

var (
	// ErrEmptyUserID is returned for blank identifiers
	ErrEmptyUserID = errors.New("user id is required")
	// ErrUserIDTooLong is returned for identifiers over MaxUserIDLength
	ErrUserIDTooLong = errors.New("user id too long")
	// ErrUserIDInvalidChars is returned for identifiers that cannot survive a round trip through a URL path
	ErrUserIDInvalidChars = errors.New("user id contains invalid characters")
)

// ValidateUserID checks an opaque backend identifier and returns it trimmed.
// The identifier's format is owned by the backend. Separators and spaces are
// allowed since every path built from an id escapes it as one segment; only
// dot segments and control characters are refused.
func ValidateUserID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyUserID
	}

	if len(id) > MaxUserIDLength {
		return "", ErrUserIDTooLong
	}

	if id == "." || id == ".." {
		return "", ErrUserIDInvalidChars
	}

	for _, char := range id {
		if !isValidIDChar(char) {
			return "", ErrUserIDInvalidChars
		}
	}

	return id, nil
}

func isValidIDChar(char rune) bool {
	return !unicode.IsControl(char)
}
