package domain

import (
	"net/url"
	"strings"
)

// Kind identifies a family of sources that share fetch and extraction rules
type Kind string

const (
	KindStandardEbooks Kind = "standard-ebooks"
	KindGovernment     Kind = "government"
	KindGutenberg      Kind = "gutenberg"
	KindWikibooks      Kind = "wikibooks"
	KindUnknown        Kind = "unknown"
)

// Kinds lists every known kind in processing order
var Kinds = []Kind{KindStandardEbooks, KindGovernment, KindGutenberg, KindWikibooks}

// ParseKind converts a user-supplied name to a Kind. Matching ignores case.
func ParseKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindStandardEbooks:
		return KindStandardEbooks
	case KindGovernment:
		return KindGovernment
	case KindGutenberg:
		return KindGutenberg
	case KindWikibooks:
		return KindWikibooks
	}
	return KindUnknown
}

// DetectKind determines the source kind from the host of rawURL
func DetectKind(rawURL string) Kind {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return KindUnknown
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")

	switch {
	case hostMatches(host, "standardebooks.org"):
		return KindStandardEbooks
	case hostMatches(host, "gutenberg.org"):
		return KindGutenberg
	case hostMatches(host, "wikibooks.org"):
		return KindWikibooks
	case strings.HasSuffix(host, ".gov"), strings.HasSuffix(host, ".mil"):
		return KindGovernment
	}
	return KindUnknown
}

// hostMatches reports whether host is domain or one of its subdomains
func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
