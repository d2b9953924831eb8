package views

import "github.com/eringen/folio/markdown"

// Site holds site-wide settings. Every handler passes this to templates so
// nothing is hardcoded.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
	Language    string
	StartYear   int // first year of the copyright range; 0 means current year only
	Nav         []NavLink
}

// NavLink is one header navigation entry.
type NavLink struct {
	Label string
	Href  string
}

// Meta carries per-page OpenGraph and SEO metadata into the <head> template.
type Meta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	Image       string
	OGType      string // "website" or "article"
	JSONLD      string
}

// Entry is a document as the templates see it.
type Entry struct {
	Title       string
	Description string
	Href        string
	Date        string // long form, "02 Jan 2006"
	ShortDate   string // "02 Jan", used inside year groups
	Updated     string
	ISODate     string
	ReadingTime string
	Tags        []string
	Image       string
	ImageBlur   string // base64 JPEG
	HTML        string
	TOC         []markdown.Heading
}

// Group is one year of a collection index.
type Group struct {
	Year    int
	Entries []Entry
}

// Quote is the quote of the day shown on the home page.
type Quote struct {
	Author string
	Text   string
}
