package folio

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"
)

// Slugify converts a title or tag to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// DocumentURL returns the absolute URL of a document.
func DocumentURL(base string, d Document) string {
	return BuildURL(base, d.Slug)
}

// FormatDate renders a date as "02 Jan 2006".
func FormatDate(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// FormatShortDate renders a date as "02 Jan", for listings already grouped by year.
func FormatShortDate(t time.Time) string {
	return t.Format("02 Jan")
}

// FilterRelated finds documents that share at least one tag with current.
func FilterRelated(current Document, docs []Document) []Document {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tag := normalizeTag(t)
		if tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []Document
	for _, d := range docs {
		if d.Slug == current.Slug {
			continue
		}
		for _, t := range d.Tags {
			if _, ok := tagSet[normalizeTag(t)]; ok {
				related = append(related, d)
				break
			}
		}
	}
	return related
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Name,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(d Document, cfg SiteConfig) string {
	docURL := DocumentURL(cfg.URL, d)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      d.Title,
		"description":   d.Description,
		"datePublished": d.PublishedOn.Format("2006-01-02"),
		"url":           docURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   docURL,
		},
	}
	if d.UpdatedOn != nil {
		data["dateModified"] = d.UpdatedOn.Format("2006-01-02")
	}
	if d.OpenGraphImage != "" {
		data["image"] = openGraphImage(cfg.URL, d)
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if cfg.Name != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		}
	}
	if len(d.Tags) > 0 {
		data["keywords"] = JoinTags(d.Tags)
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// absoluteURL resolves ref against base; absolute refs are returned as is.
// openGraphImage returns the absolute URL of the document's social card.
// A cover image taken from front matter is served from the assets folder.
func openGraphImage(base string, d Document) string {
	ref := d.OpenGraphImage
	if d.Image != "" && ref == d.Image {
		ref = AssetURL(ref)
	}
	return absoluteURL(base, ref)
}

func absoluteURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
