package utils

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxIDLength is the longest route or trip id accepted, in bytes.
const MaxIDLength = 255

// ValidateID checks that an id taken from a request path is usable as a
// lookup key. GTFS ids are free-form, so only emptiness, length, encoding
// and control characters are checked.
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > MaxIDLength {
		return errors.New("id too long (max 255 characters)")
	}

	if !utf8.ValidString(id) || strings.IndexFunc(id, unicode.IsControl) >= 0 {
		return errors.New("id contains invalid characters")
	}

	return nil
}
