package converter

import "strings"

// IsPlainTextContent checks if the content is plain text.
// Returns true for text/plain content type or .txt URL extension.
// Query strings and fragments are stripped before checking the extension.
func IsPlainTextContent(contentType, url string) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "text/plain") {
		return true
	}

	lowerURL := strings.ToLower(url)

	if idx := strings.Index(lowerURL, "?"); idx != -1 {
		lowerURL = lowerURL[:idx]
	}
	if idx := strings.Index(lowerURL, "#"); idx != -1 {
		lowerURL = lowerURL[:idx]
	}

	return strings.HasSuffix(lowerURL, ".txt")
}

// IsHTMLContent checks if the content type indicates HTML content.
// An empty content type is treated as HTML.
func IsHTMLContent(contentType string) bool {
	if contentType == "" {
		return true
	}
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "text/html") ||
		strings.Contains(ct, "application/xhtml")
}
