package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength caps label size; anything longer cannot fit a line anyway.
const maxLabelLength = 128

// ValidateLabel validates a skill label from the feed.
//
// The validation rules are intentionally conservative:
//   - No empty or whitespace-only labels
//   - No control characters (including newlines and tabs)
//   - Maximum length of 128 characters
//
// Width and layout constraints are handled separately by the board engine;
// a valid label may still be too wide to ever be placed.
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidFeed, "label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidFeed, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFeed, "label contains control characters")
		}
	}

	return nil
}
