// Package copymode implements the query prefix markers that select a
// text-casing transform for copy actions. A query starting with ">"
// requests lowerCamelCase copies, ">>" requests UPPERCASE copies; the
// markers are stripped before the query is sent to the translator.
package copymode

import (
	"strings"
	"unicode"
)

// Mode is the casing transform applied when copying a result.
type Mode int

const (
	Normal Mode = iota
	LowerCamelCase
	Uppercase
)

func (m Mode) String() string {
	switch m {
	case LowerCamelCase:
		return "lowerCamelCase"
	case Uppercase:
		return "UPPERCASE"
	default:
		return "normal"
	}
}

// Detect inspects the leading marker characters of text. Text shorter
// than the marker length carries no markers and is Normal.
func Detect(text string) Mode {
	if len(text) >= 2 && text[0] == '>' && text[1] == '>' {
		return Uppercase
	}
	if len(text) >= 1 && text[0] == '>' {
		return LowerCamelCase
	}
	return Normal
}

// Strip removes the marker characters for mode from text (two for
// Uppercase, one for LowerCamelCase, none for Normal) and trims the
// surrounding whitespace of the remainder.
func Strip(text string, mode Mode) string {
	switch mode {
	case Uppercase:
		if len(text) >= 2 {
			text = text[2:]
		}
	case LowerCamelCase:
		if len(text) >= 1 {
			text = text[1:]
		}
	}
	return strings.TrimSpace(text)
}

// Apply transforms text according to mode before it is placed on the
// clipboard. LowerCamelCase lowers the first word and title-cases the
// rest, removing the spaces between them.
func Apply(text string, mode Mode) string {
	switch mode {
	case Uppercase:
		return strings.ToUpper(text)
	case LowerCamelCase:
		words := strings.Fields(text)
		if len(words) == 0 {
			return text
		}
		var b strings.Builder
		b.WriteString(strings.ToLower(words[0]))
		for _, w := range words[1:] {
			r := []rune(strings.ToLower(w))
			r[0] = unicode.ToUpper(r[0])
			b.WriteString(string(r))
		}
		return b.String()
	default:
		return text
	}
}
