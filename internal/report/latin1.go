package report

import (
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// placeholder replaces text no part of which survives the single-byte
// font encoding. Losing a block beats losing the whole report.
const placeholder = "content contains unsupported characters"

// toLatin1 re-encodes text for the PDF's single-byte core font.
// Unmappable runes become '?'; if nothing readable survives, the fixed
// placeholder is substituted instead.
func toLatin1(text string) string {
	if text == "" {
		return ""
	}

	out := make([]byte, 0, len(text))
	mapped := 0
	for _, r := range text {
		if b, ok := charmap.Windows1252.EncodeRune(r); ok {
			out = append(out, b)
			if !unicode.IsSpace(r) {
				mapped++
			}
		} else {
			out = append(out, '?')
		}
	}

	if mapped == 0 && hasNonSpace(text) {
		return placeholder
	}
	return string(out)
}

func hasNonSpace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
