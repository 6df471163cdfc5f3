package excerpt

import "github.com/tbhb/aitells/internal/domain"

// DefaultMinParagraphWords is the shortest paragraph kept as prose. Anything
// shorter is usually a heading, caption or navigation link.
const DefaultMinParagraphWords = 20

// FilterShort drops paragraphs with fewer than minWords words.
func FilterShort(paragraphs []string, minWords int) []string {
	kept := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if WordCount(p) >= minWords {
			kept = append(kept, p)
		}
	}
	return kept
}

// TrimFraction drops max(1, len*fraction) paragraphs from both ends to skip
// front and back matter. It returns nil when fewer than minLen paragraphs are
// given or nothing remains after trimming.
func TrimFraction(paragraphs []string, fraction float64, minLen int) []string {
	if len(paragraphs) < minLen || len(paragraphs) == 0 {
		return nil
	}
	skip := int(float64(len(paragraphs)) * fraction)
	if skip < 1 {
		skip = 1
	}
	if 2*skip >= len(paragraphs) {
		return nil
	}
	return paragraphs[skip : len(paragraphs)-skip]
}

// MiddleSections drops the first and last section. It returns nil when fewer
// than three sections are given.
func MiddleSections(sections []domain.Section) []domain.Section {
	if len(sections) < 3 {
		return nil
	}
	return sections[1 : len(sections)-1]
}

// SelectFromSections runs Find over each section in order and returns the
// first hit along with the section it came from. Windows never span sections.
func SelectFromSections(sections []domain.Section, b Bounds) (domain.Section, Window, error) {
	for _, s := range sections {
		w, err := Find(s.Paragraphs, b)
		if err == nil {
			return s, w, nil
		}
	}
	return domain.Section{}, Window{}, ErrNotFound
}
