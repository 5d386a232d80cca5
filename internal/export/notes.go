package export

import "strings"

// MaxNotesLength caps the notes stored with a document, in runes.
const MaxNotesLength = 2000

// SanitizeNotes strips control characters other than newline and tab,
// trims surrounding whitespace and truncates to MaxNotesLength runes.
func SanitizeNotes(text string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(text) {
		if n == MaxNotesLength {
			break
		}
		if (r < 32 && r != '\n' && r != '\t') || r == 127 {
			continue
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
