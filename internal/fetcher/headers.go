package fetcher

// DefaultUserAgent identifies the fetcher to the sites it reads from
const DefaultUserAgent = "aitells-sample-fetcher/1.0 (https://github.com/tbhb/aitells; educational use)"

// RequestHeaders returns the headers sent with every request
func RequestHeaders(userAgent string) map[string]string {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,text/plain;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
}
