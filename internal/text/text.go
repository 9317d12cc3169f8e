// Package text holds the tokenization helpers used by paragraph layout.
package text

import (
	"strings"
	"unicode"
)

// SplitTokens splits s into alternating word and space tokens. Every run of
// whitespace collapses into a single " " token; leading and trailing
// whitespace is preserved as space tokens so adjacent styled runs keep their
// separation.
func SplitTokens(s string) []string {
	if s == "" {
		return nil
	}

	tokens := []string{}
	var cur []rune
	var curIsSpace *bool

	for _, r := range s {
		isSp := unicode.IsSpace(r)
		if curIsSpace == nil {
			curIsSpace = new(bool)
			*curIsSpace = isSp
		}

		switch {
		case *curIsSpace != isSp:
			if len(cur) > 0 {
				tokens = append(tokens, string(cur))
			}
			cur = []rune{}

			if isSp {
				cur = append(cur, ' ')
			} else {
				cur = append(cur, r)
			}
			*curIsSpace = isSp
		case isSp:
			if len(cur) == 0 {
				cur = append(cur, ' ')
			}
		default:
			cur = append(cur, r)
		}
	}
	if len(cur) > 0 {
		tokens = append(tokens, string(cur))
	}

	return tokens
}

// IsSpace reports whether s is non-empty and consists only of whitespace.
func IsSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// NormalizeSpace collapses every whitespace run in s to a single space and
// trims the ends.
func NormalizeSpace(s string) string {
	var result []rune
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result = append(result, ' ')
			}
			lastWasSpace = true
		} else {
			result = append(result, r)
			lastWasSpace = false
		}
	}

	return strings.TrimSpace(string(result))
}
