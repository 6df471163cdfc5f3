package converter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// WikiSkipClasses mark MediaWiki chrome that sits inside the article body:
// tables of contents, navigation boxes, edit links, captions and notices.
var WikiSkipClasses = []string{
	"toc",
	"navbox",
	"mw-editsection",
	"hatnote",
	"thumb",
	"mw-empty-elt",
	"noprint",
	"sistersitebox",
	"metadata",
	"ambox",
	"mbox-small",
}

var wikiChromeSelector = classSelector(WikiSkipClasses)

func classSelector(classes []string) string {
	selectors := make([]string, len(classes))
	for i, class := range classes {
		selectors[i] = "." + class
	}
	return strings.Join(selectors, ", ")
}

// InWikiChrome reports whether any ancestor of sel carries one of
// WikiSkipClasses. The element's own classes are not considered.
func InWikiChrome(sel *goquery.Selection) bool {
	return sel.ParentsFiltered(wikiChromeSelector).Length() > 0
}
