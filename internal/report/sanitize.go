package report

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ReplacementChar stands in for runes the PDF core fonts cannot encode
const ReplacementChar = '?'

var apostropheReplacer = strings.NewReplacer("’", "'")

// SanitizeText makes comment text safe for the PDF renderer: the typographic
// apostrophe becomes an ASCII one and every rune outside ISO-8859-1 becomes
// ReplacementChar. It never fails and is idempotent.
func SanitizeText(text string) string {
	text = apostropheReplacer.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if _, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			b.WriteRune(r)
		} else {
			b.WriteRune(ReplacementChar)
		}
	}
	return b.String()
}

// toCP1252 converts sanitized text to the Windows-1252 bytes the core fonts
// are laid out in. The Latin-1 C1 controls have no glyph there and become
// ReplacementChar.
func toCP1252(text string) string {
	text = SanitizeText(text)

	encoded := make([]byte, 0, len(text))
	for _, r := range text {
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			encoded = append(encoded, c)
		} else {
			encoded = append(encoded, ReplacementChar)
		}
	}
	return string(encoded)
}
