// Package markup bridges paragraph input and the inline markup subset the
// layout engine understands: <b>, <i>, <u> and <br/> over plain text.
// Translate reduces rich-text editor HTML to the subset, EscapePlain lifts
// raw plain text into it, and ParseRuns parses the subset into styled runs
// for layout.
package markup

import (
	"fmt"
	"strings"
)

// Mode selects how raw paragraph input is turned into inline markup.
type Mode int

const (
	// ModePlain treats input as literal text: markup specials are escaped
	// and newlines become explicit line breaks.
	ModePlain Mode = iota
	// ModeRich treats input as rich-text editor HTML and translates it
	// through Translate.
	ModeRich
	// ModeMarkup treats input as inline markup already in the subset and
	// passes it through untouched.
	ModeMarkup
)

// ParseMode maps a configuration string to a Mode. The empty string selects
// ModePlain.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "plain":
		return ModePlain, nil
	case "rich", "html":
		return ModeRich, nil
	case "markup":
		return ModeMarkup, nil
	default:
		return ModePlain, fmt.Errorf("unknown paragraph mode %q", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModeRich:
		return "rich"
	case ModeMarkup:
		return "markup"
	default:
		return "plain"
	}
}

// Render produces inline markup from raw paragraph input under the mode.
func (m Mode) Render(raw string) string {
	switch m {
	case ModeRich:
		return Translate(raw)
	case ModeMarkup:
		return raw
	default:
		return EscapePlain(raw)
	}
}

// EscapePlain lifts literal text into the inline markup subset: &, < and >
// are escaped and newlines become <br/> tags.
func EscapePlain(text string) string {
	if text == "" {
		return ""
	}
	s := escapeText(text)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "<br/>")
}
