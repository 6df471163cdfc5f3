package catalog

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tbhb/aitells/internal/domain"
	"github.com/tbhb/aitells/internal/utils"
)

// URL templates of the fixed-layout sources
const (
	StandardEbooksURLFormat = "https://standardebooks.org/ebooks/%s/%s/text/single-page"
	GutenbergTextURLFormat  = "https://www.gutenberg.org/cache/epub/%d/pg%d.txt"
	GutenbergEbookURLFormat = "https://www.gutenberg.org/ebooks/%d"
)

// Default licenses per kind
const (
	LicenseStandardEbooks = "Public Domain (CC0)"
	LicenseGovernment     = "Public Domain (US Government Work)"
	LicenseGutenberg      = "Public Domain"
	LicenseWikibooks      = "CC BY-SA 3.0"
)

var (
	gutenbergIDRegex = regexp.MustCompile(`/(?:ebooks|epub)/(\d+)`)
	slugRegex        = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Catalog represents the complete catalog configuration
type Catalog struct {
	Sources []Source `yaml:"sources" json:"sources"`
	Options Options  `yaml:"options" json:"options"`
}

// Source is one catalog entry
type Source struct {
	Kind domain.Kind `yaml:"kind,omitempty" json:"kind,omitempty"`
	URL  string      `yaml:"url,omitempty" json:"url,omitempty"`

	// Standard Ebooks
	AuthorSlug string `yaml:"author_slug,omitempty" json:"author_slug,omitempty"`
	TitleSlug  string `yaml:"title_slug,omitempty" json:"title_slug,omitempty"`

	// Project Gutenberg
	ID int `yaml:"id,omitempty" json:"id,omitempty"`

	// Government pages; empty falls back to readability extraction
	Selector string `yaml:"selector,omitempty" json:"selector,omitempty"`

	Title     string `yaml:"title,omitempty" json:"title,omitempty"`
	Author    string `yaml:"author,omitempty" json:"author,omitempty"`
	Publisher string `yaml:"publisher,omitempty" json:"publisher,omitempty"`
	License   string `yaml:"license,omitempty" json:"license,omitempty"`
	Output    string `yaml:"output" json:"output"`
}

// Options represents global catalog options
type Options struct {
	// Output overrides the configured output directory when set
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
	// Delay overrides the configured politeness delay when non-zero
	Delay Duration `yaml:"delay,omitempty" json:"delay,omitempty"`
	// ContinueOnError defaults to true
	ContinueOnError *bool `yaml:"continue_on_error,omitempty" json:"continue_on_error,omitempty"`
}

// ShouldContinue reports whether a failed source lets the run go on
func (o Options) ShouldContinue() bool {
	return o.ContinueOnError == nil || *o.ContinueOnError
}

// FetchURL returns the URL the source content is downloaded from
func (s Source) FetchURL() string {
	switch s.Kind {
	case domain.KindStandardEbooks:
		if s.AuthorSlug != "" && s.TitleSlug != "" {
			return fmt.Sprintf(StandardEbooksURLFormat, s.AuthorSlug, s.TitleSlug)
		}
	case domain.KindGutenberg:
		if s.ID > 0 {
			return fmt.Sprintf(GutenbergTextURLFormat, s.ID, s.ID)
		}
	}
	return s.URL
}

// PageURL returns the URL recorded in the sample header
func (s Source) PageURL() string {
	if s.Kind == domain.KindGutenberg && s.ID > 0 {
		return fmt.Sprintf(GutenbergEbookURLFormat, s.ID)
	}
	return s.FetchURL()
}

// DisplayTitle returns the title, derived from the slug when not given
func (s Source) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	if s.TitleSlug != "" {
		return FormatSlug(s.TitleSlug)
	}
	return s.Output
}

// DisplayAuthor returns the author, derived from the slug when not given
func (s Source) DisplayAuthor() string {
	if s.Author != "" {
		return s.Author
	}
	return FormatSlug(s.AuthorSlug)
}

// DisplayPublisher returns the publisher shown in the header
func (s Source) DisplayPublisher() string {
	if s.Publisher != "" {
		return s.Publisher
	}
	switch s.Kind {
	case domain.KindStandardEbooks:
		return "Standard Ebooks"
	case domain.KindGutenberg:
		return "Project Gutenberg"
	case domain.KindWikibooks:
		return "Wikibooks"
	case domain.KindGovernment:
		return "U.S. Government"
	}
	return ""
}

// DisplayLicense returns the license shown in the header
func (s Source) DisplayLicense() string {
	if s.License != "" {
		return s.License
	}
	switch s.Kind {
	case domain.KindStandardEbooks:
		return LicenseStandardEbooks
	case domain.KindGovernment:
		return LicenseGovernment
	case domain.KindGutenberg:
		return LicenseGutenberg
	case domain.KindWikibooks:
		return LicenseWikibooks
	}
	return ""
}

// FormatSlug turns a URL slug into a title-cased name
func FormatSlug(slug string) string {
	title := cases.Title(language.Und)
	words := strings.Fields(strings.ReplaceAll(slug, "-", " "))
	for i, w := range words {
		words[i] = title.String(w)
	}
	return strings.Join(words, " ")
}

// normalize fills derivable fields: the kind from the URL host, Standard
// Ebooks slugs and Gutenberg IDs from their URLs.
func (s *Source) normalize() {
	if s.Kind == "" {
		s.Kind = domain.DetectKind(s.URL)
	} else {
		s.Kind = domain.ParseKind(string(s.Kind))
	}

	switch s.Kind {
	case domain.KindStandardEbooks:
		if (s.AuthorSlug == "" || s.TitleSlug == "") && s.URL != "" {
			s.AuthorSlug, s.TitleSlug = slugsFromURL(s.URL)
		}
	case domain.KindGutenberg:
		if s.ID == 0 && s.URL != "" {
			if m := gutenbergIDRegex.FindStringSubmatch(s.URL); m != nil {
				s.ID, _ = strconv.Atoi(m[1])
			}
		}
	}
}

func slugsFromURL(rawURL string) (string, string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ""
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "ebooks" {
		return "", ""
	}
	return parts[1], parts[2]
}

// Validate checks a single source
func (s Source) Validate() error {
	if s.Output == "" {
		return ErrMissingOutput
	}
	if !utils.IsValidFilename(s.Output) {
		return fmt.Errorf("%w: %q", ErrInvalidOutput, s.Output)
	}

	switch s.Kind {
	case domain.KindStandardEbooks:
		if !slugRegex.MatchString(s.AuthorSlug) {
			return fmt.Errorf("%w: author_slug", ErrMissingField)
		}
		if !slugRegex.MatchString(s.TitleSlug) {
			return fmt.Errorf("%w: title_slug", ErrMissingField)
		}
	case domain.KindGutenberg:
		if s.ID <= 0 {
			return fmt.Errorf("%w: id", ErrMissingField)
		}
		if s.Title == "" {
			return fmt.Errorf("%w: title", ErrMissingField)
		}
	case domain.KindGovernment, domain.KindWikibooks:
		if s.URL == "" {
			return fmt.Errorf("%w: url", ErrMissingField)
		}
		if _, err := url.ParseRequestURI(s.URL); err != nil {
			return fmt.Errorf("%w: %s", domain.ErrInvalidURL, s.URL)
		}
		if s.Title == "" {
			return fmt.Errorf("%w: title", ErrMissingField)
		}
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownKind, s.Kind)
	}
	return nil
}

// Validate validates the catalog configuration
func (c *Catalog) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	seen := make(map[string]int, len(c.Sources))
	for i, src := range c.Sources {
		if err := src.Validate(); err != nil {
			return fmt.Errorf("source %d (%s): %w", i, src.Output, err)
		}
		if prev, ok := seen[src.Output]; ok {
			return fmt.Errorf("source %d: %w: %s also used by source %d", i, ErrDuplicateOutput, src.Output, prev)
		}
		seen[src.Output] = i
	}
	return nil
}

// ByKind returns the sources of the given kind in catalog order
func (c *Catalog) ByKind(kind domain.Kind) []Source {
	var out []Source
	for _, src := range c.Sources {
		if src.Kind == kind {
			out = append(out, src)
		}
	}
	return out
}

// Filter returns a copy of the catalog restricted to the given kinds.
// No kinds means all of them.
func (c *Catalog) Filter(kinds ...domain.Kind) *Catalog {
	if len(kinds) == 0 {
		cp := *c
		cp.Sources = append([]Source(nil), c.Sources...)
		return &cp
	}

	want := make(map[domain.Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}

	out := &Catalog{Options: c.Options}
	for _, src := range c.Sources {
		if want[src.Kind] {
			out.Sources = append(out.Sources, src)
		}
	}
	return out
}
