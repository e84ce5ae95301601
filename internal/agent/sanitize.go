package agent

import (
	"regexp"
	"strings"
)

// Light markdown cleanup: agent runtimes answer in markdown, LINE renders
// plain text. Emphasis markers are stripped and link syntax collapses to its
// readable text.
var (
	linkRe    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	boldRe    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRe  = regexp.MustCompile(`\*([^*]+)\*`)
	underRe   = regexp.MustCompile(`__([^_]+)__`)
	codeRe    = regexp.MustCompile("`([^`]*)`")
	headingRe = regexp.MustCompile(`(?m)^#{1,6}\s*`)
)

// CleanText strips markup emphasis markers and link syntax down to plain
// readable text.
func CleanText(s string) string {
	s = linkRe.ReplaceAllString(s, "$1")
	s = boldRe.ReplaceAllString(s, "$1")
	s = italicRe.ReplaceAllString(s, "$1")
	s = underRe.ReplaceAllString(s, "$1")
	s = codeRe.ReplaceAllString(s, "$1")
	s = headingRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
