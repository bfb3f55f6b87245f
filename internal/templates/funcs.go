package templates

import (
	"strings"
	"text/template"
	"unicode"
)

// FuncMap returns the helper functions available to license templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"anchor":     Anchor,
		"paragraphs": Paragraphs,
	}
}

// Anchor turns s into a lowercase slug usable as an HTML id.
// Runs of characters other than letters and digits become a single '-'.
func Anchor(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Paragraphs splits text into paragraphs separated by blank lines.
// Line endings are normalised to \n; paragraphs keep their inner line breaks.
func Paragraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, "\n"))
			cur = cur[:0]
		}
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return out
}
