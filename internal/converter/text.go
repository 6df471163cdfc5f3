package converter

import (
	"regexp"
	"strings"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	blankLines      = regexp.MustCompile(`\n\s*\n`)
	excessNewlines  = regexp.MustCompile(`\n{3,}`)
	wikiArtifacts   = regexp.MustCompile(`(?i)\[\s*(?:edit|citation needed|\d+)\s*\]`)
)

// NormalizeNewlines converts CRLF and lone CR line endings to LF
func NormalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// NormalizeText collapses runs of spaces and tabs, reduces any blank-line
// run to a single paragraph break and trims the result. Line breaks inside
// a paragraph are kept.
func NormalizeText(text string) string {
	text = horizontalSpace.ReplaceAllString(text, " ")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// CollapseWhitespace joins all whitespace-separated tokens with single spaces
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// CollapseBlankLines reduces three or more consecutive newlines to two
func CollapseBlankLines(text string) string {
	return excessNewlines.ReplaceAllString(text, "\n\n")
}

// SplitParagraphs splits text on blank lines and collapses whitespace inside
// each paragraph. Empty paragraphs are dropped.
func SplitParagraphs(text string) []string {
	raw := strings.Split(text, "\n\n")
	paragraphs := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = CollapseWhitespace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// StripWikiArtifacts removes [edit], [citation needed] and numeric footnote
// markers, then collapses whitespace.
func StripWikiArtifacts(text string) string {
	return CollapseWhitespace(wikiArtifacts.ReplaceAllString(text, ""))
}
