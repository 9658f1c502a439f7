package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/pdfqa/internal/document"
)

// DefaultHeader holds any text that appears before the first header line.
const DefaultHeader = "introduction"

// maxHeaderWords is the exclusive upper bound on words in a header line.
const maxHeaderWords = 5

// Segment splits text into sections. A line is a header when, after
// trimming, it is all upper case, has fewer than five words and is longer
// than one character. Every other line is appended to the current section.
// Bodies are trimmed and empty sections are dropped.
func Segment(text string) *document.Sections {
	sections := document.NewSections()
	if text == "" {
		return sections
	}

	current := DefaultHeader
	sections.Set(current, "")

	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if IsHeader(stripped) {
			current = stripped
			sections.Set(current, "")
			continue
		}
		sections.Append(current, line+"\n")
	}

	for _, header := range sections.Headers() {
		body, _ := sections.Get(header)
		body = strings.TrimSpace(body)
		if body == "" {
			sections.Delete(header)
			continue
		}
		sections.Set(header, body)
	}
	return sections
}

// IsHeader reports whether an already trimmed line looks like a section header.
func IsHeader(line string) bool {
	return isUpper(line) &&
		len(strings.Fields(line)) < maxHeaderWords &&
		utf8.RuneCountInString(line) > 1
}

// isUpper is true when s has at least one cased letter and no lower or
// title case letters.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r), unicode.IsTitle(r):
			return false
		case unicode.IsUpper(r):
			cased = true
		}
	}
	return cased
}
