package folio

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// DefaultWordsPerMinute is the assumed reading speed.
const DefaultWordsPerMinute = 200

// Slug derives the document URL path from its path relative to the content
// root: leading "/", extension stripped, trailing "/index" flattened.
func Slug(rel string) string {
	p := strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(rel, "\\", "/")), "/")
	p = strings.TrimSuffix(p, path.Ext(p))
	if p == "index" {
		p = ""
	}
	p = strings.TrimSuffix(p, "/index")
	return "/" + p
}

// SlugAsParams drops the leading content-type segment from slug.
// A single-segment slug yields "".
func SlugAsParams(slug string) string {
	segments := strings.Split(strings.Trim(slug, "/"), "/")
	if len(segments) <= 1 {
		return ""
	}
	return strings.Join(segments[1:], "/")
}

// CountWords counts Unicode words in text, ignoring punctuation and
// whitespace segments.
func CountWords(text string) int {
	n := 0
	tokens := words.FromString(text)
	for tokens.Next() {
		for _, r := range tokens.Value() {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				n++
				break
			}
		}
	}
	return n
}

// ReadingTime formats the estimated reading time for a body of n words.
// The estimate is rounded up and never below one minute.
func ReadingTime(n, wordsPerMinute int) string {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	minutes := (n + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// IsRemoteImage reports whether ref points somewhere other than the local
// assets folder. Remote images get no placeholder.
func IsRemoteImage(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//") ||
		strings.HasPrefix(lower, "data:")
}

// OpenGraphImageURL returns image when set, otherwise a link to the
// generated OpenGraph card for the title and description.
func OpenGraphImageURL(endpoint, image, title, description string) string {
	if image != "" {
		return image
	}
	q := url.Values{}
	if title != "" {
		q.Set("title", title)
	}
	if description != "" {
		q.Set("description", description)
	}
	if len(q) == 0 {
		return endpoint
	}
	return endpoint + "?" + q.Encode()
}
