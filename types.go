package folio

import (
	"time"

	"github.com/eringen/folio/markdown"
)

// RawFile is one content file found by Discover. Path is relative to the
// content root and always slash separated.
type RawFile struct {
	Path       string
	Extension  string
	Collection string
}

// FrontMatter is the untyped metadata block at the top of a content file.
type FrontMatter map[string]any

// Body holds the unparsed source and, when rendering is enabled, the
// compiled HTML.
type Body struct {
	Raw  string `json:"raw"`
	HTML string `json:"html,omitempty"`
}

// Heading is one node of a document's table of contents.
type Heading = markdown.Heading

// Document is the validated, schema-typed record produced by the pipeline.
// Documents are built once per Build and never mutated afterwards.
type Document struct {
	Collection string `json:"collection"`
	SourcePath string `json:"sourcePath"`

	Title       string         `json:"title"`
	Description string         `json:"description"`
	PublishedOn time.Time      `json:"publishedOn"`
	UpdatedOn   *time.Time     `json:"updatedOn,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Image       string         `json:"image,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"` // schema fields beyond the built-ins

	Slug           string    `json:"slug"`
	SlugAsParams   string    `json:"slugAsParams"`
	ReadingTime    string    `json:"readingTime"`
	WordCount      int       `json:"wordCount"`
	ImageBlur      string    `json:"imageBlur,omitempty"`
	OpenGraphImage string    `json:"openGraphImage"`
	TOC            []Heading `json:"toc,omitempty"`
	Body           Body      `json:"-"`
}

// Year returns the publication year used for grouping.
func (d Document) Year() int {
	return d.PublishedOn.Year()
}

// YearGroup is one bucket of Collection.GroupByYear.
type YearGroup struct {
	Year      int
	Documents []Document
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	Image       string
	OGType      string // "website" or "article"
}
