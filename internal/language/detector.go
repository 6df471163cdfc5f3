// Package language checks that an excerpt is written in the expected
// natural language.
package language

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"

	"github.com/tbhb/aitells/internal/domain"
)

// Candidates are the languages a detector distinguishes between. A small
// set keeps the models lingua loads into memory modest.
var Candidates = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Latin,
}

// Ensure Detector implements domain.LanguageDetector
var _ domain.LanguageDetector = (*Detector)(nil)

// Detector reports whether text is written in one expected language
type Detector struct {
	expected lingua.Language
	detector lingua.LanguageDetector
}

// Parse resolves a language by English name ("english") or ISO 639-1 code
// ("en"), case-insensitively.
func Parse(name string) (lingua.Language, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, lang := range Candidates {
		if strings.ToLower(lang.String()) == name ||
			strings.ToLower(lang.IsoCode639_1().String()) == name {
			return lang, nil
		}
	}
	return lingua.Unknown, fmt.Errorf("unsupported language %q", name)
}

// New builds a detector for the named language. An empty name returns nil,
// meaning no language check is made.
func New(name string) (*Detector, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	expected, err := Parse(name)
	if err != nil {
		return nil, err
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(Candidates...).
		Build()

	return &Detector{expected: expected, detector: detector}, nil
}

// Expected returns the language the detector accepts
func (d *Detector) Expected() string {
	return d.expected.String()
}

// Matches returns the detected language name and whether it equals the
// expected one. Text whose language cannot be determined does not match.
func (d *Detector) Matches(text string) (string, bool) {
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return lingua.Unknown.String(), false
	}
	return lang.String(), lang == d.expected
}
