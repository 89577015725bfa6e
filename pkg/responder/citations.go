package responder

import (
	"regexp"
	"strings"
)

// Search-backed models decorate replies with numeric citation markers like
// "[1]" or "[2][3]" that point at sources the chat UI never shows. They are
// noise to the founder, so replies are scrubbed before anyone sees them.
var (
	trailingCitations = regexp.MustCompile(`(\s*\[\d+\])+\s*$`)
	inlineCitation    = regexp.MustCompile(`\[\d+\]`)
	runsOfBlank       = regexp.MustCompile(`[^\S\r\n]+`)
)

// StripCitations removes numeric citation markers from a model reply.
// Trailing marker groups go first so " [1] [2]" at the end never leaves a
// dangling space, then any inline markers, then runs of spaces and tabs
// collapse to one space. Newlines are preserved; markdown structure such as
// lists and paragraphs must survive the scrub.
func StripCitations(text string) string {
	text = trailingCitations.ReplaceAllString(text, "")
	text = inlineCitation.ReplaceAllString(text, "")
	text = runsOfBlank.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
