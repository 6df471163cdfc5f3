package converter

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DetectEncoding returns the canonical charset name for an HTML body, using
// the Content-Type header first, then meta tags, then byte sniffing.
func DetectEncoding(content []byte, contentType string) string {
	_, name, _ := charset.DetermineEncoding(content, contentType)
	if name == "" {
		return "utf-8"
	}
	return name
}

// DecodeHTML converts an HTML body to UTF-8. Bodies that are already valid
// UTF-8 and not declared otherwise are returned unchanged.
func DecodeHTML(content []byte, contentType string) ([]byte, error) {
	enc := DetectEncoding(content, contentType)
	if isUTF8Name(enc) {
		return content, nil
	}

	e, err := GetEncoding(enc)
	if err != nil {
		// Unknown charset, keep bytes as they are
		return content, nil
	}

	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(content), e.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", enc, err)
	}
	return out, nil
}

// DecodeText returns a plain-text body as a string. Valid UTF-8 is used as
// is, with a leading byte order mark dropped; anything else is read as
// Latin-1, which maps every byte to a rune and cannot fail.
func DecodeText(content []byte) string {
	if utf8.Valid(content) {
		return strings.TrimPrefix(string(content), "\ufeff")
	}

	out, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return strings.ToValidUTF8(string(content), "\ufffd")
	}
	return string(out)
}

// GetEncoding returns the encoding for a charset name
func GetEncoding(charsetName string) (encoding.Encoding, error) {
	return htmlindex.Get(charsetName)
}

func isUTF8Name(name string) bool {
	name = strings.ToLower(name)
	return name == "utf-8" || name == "utf8"
}
