package catalog

import (
	"regexp"
	"strings"
)

var markupPattern = regexp.MustCompile(`<[^>]*>?`)

// StripMarkup removes every tag-like run from s and any '>' left behind, so
// the result never contains '<' or '>'. It is not an HTML parser: descriptions
// come from trusted admin tooling and only need to read as plain text.
func StripMarkup(s string) string {
	if s == "" {
		return s
	}
	s = markupPattern.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, ">", "")
}

// NormalizeImagePath turns a stored image path into a web-rooted URL path:
// backslashes become slashes, a leading "public/" is dropped and exactly one
// leading slash is kept. Absolute http(s) URLs are returned unchanged.
func NormalizeImagePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimLeft(p, "/")
	p = strings.TrimPrefix(p, "public/")
	return "/" + strings.TrimLeft(p, "/")
}
