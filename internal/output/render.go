package output

import (
	"strings"

	"github.com/tbhb/aitells/internal/domain"
)

// Render formats a sample as a text file: a comment header naming the
// source, a blank line, then the paragraphs separated by blank lines.
func Render(s *domain.Sample) string {
	var b strings.Builder

	b.WriteString("# Source: ")
	b.WriteString(s.Publisher)
	b.WriteString(" - ")
	b.WriteString(s.Title)
	if s.Author != "" {
		b.WriteString(" by ")
		b.WriteString(s.Author)
	}
	b.WriteByte('\n')

	if s.Section != "" {
		b.WriteString("# Section: ")
		b.WriteString(s.Section)
		b.WriteByte('\n')
	}

	b.WriteString("# URL: ")
	b.WriteString(s.URL)
	b.WriteByte('\n')
	b.WriteString("# License: ")
	b.WriteString(s.License)
	b.WriteString("\n\n")

	b.WriteString(strings.Join(s.Paragraphs, "\n\n"))
	b.WriteByte('\n')

	return b.String()
}
