package folio

import (
	"fmt"
	"sort"
	"strings"
)

// Collection is the read-only result of a Build. It is safe for concurrent
// use because nothing mutates it after construction.
type Collection struct {
	docs     []Document
	bySlug   map[string]int
	warnings []error
}

// NewCollection assembles docs into a Collection. Slugs must be unique.
func NewCollection(docs []Document) (*Collection, error) {
	return newCollection(append([]Document(nil), docs...))
}

func newCollection(docs []Document) (*Collection, error) {
	c := &Collection{
		docs:   docs,
		bySlug: make(map[string]int, len(docs)),
	}
	for i, d := range docs {
		if j, dup := c.bySlug[d.Slug]; dup {
			return nil, &FileError{
				Kind:  ErrDuplicateSlug,
				Path:  d.SourcePath,
				Field: "slug",
				Err:   fmt.Errorf("%s is also produced by %s", d.Slug, docs[j].SourcePath),
			}
		}
		c.bySlug[d.Slug] = i
	}
	return c, nil
}

// Len returns the number of documents.
func (c *Collection) Len() int {
	return len(c.docs)
}

// All returns every document in discovery order.
func (c *Collection) All() []Document {
	return append([]Document(nil), c.docs...)
}

// Warnings lists the files skipped by a lenient build.
func (c *Collection) Warnings() []error {
	return append([]error(nil), c.warnings...)
}

// FindBySlug returns the document with the given slug. A missing slug is
// reported through ok, never as an error.
func (c *Collection) FindBySlug(slug string) (Document, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Document{}, false
	}
	return c.docs[i], true
}

// FindByParams looks a document up by collection name and SlugAsParams, the
// shape of a "/blog/:slug" route.
func (c *Collection) FindByParams(collection, params string) (Document, bool) {
	return c.FindBySlug("/" + collection + "/" + strings.Trim(params, "/"))
}

// OfType returns the documents of one collection in discovery order.
func (c *Collection) OfType(name string) []Document {
	var out []Document
	for _, d := range c.docs {
		if d.Collection == name {
			out = append(out, d)
		}
	}
	return out
}

// SortByPublishedDescending returns a new slice ordered newest first.
// Documents published at the same instant keep their discovery order.
func (c *Collection) SortByPublishedDescending() []Document {
	return SortByPublishedDescending(c.docs)
}

// GroupByYear partitions the collection by publication year.
func (c *Collection) GroupByYear() []YearGroup {
	return GroupByYear(c.docs)
}

// Tags returns the distinct tags in use, sorted.
func (c *Collection) Tags() []string {
	return Tags(c.docs)
}

// FilterByTag returns the documents carrying tag, compared case-insensitively.
func (c *Collection) FilterByTag(tag string) []Document {
	return FilterByTag(c.docs, tag)
}

// Related returns up to n documents of the same collection sharing at
// least one tag with doc, newest first.
func (c *Collection) Related(doc Document, n int) []Document {
	related := FilterRelated(doc, c.OfType(doc.Collection))
	related = SortByPublishedDescending(related)
	if n >= 0 && len(related) > n {
		related = related[:n]
	}
	return related
}

// SortByPublishedDescending returns a stably sorted copy of docs, newest first.
func SortByPublishedDescending(docs []Document) []Document {
	out := append([]Document(nil), docs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedOn.After(out[j].PublishedOn)
	})
	return out
}

// GroupByYear buckets docs by publication year. Years are ordered
// descending and each bucket is sorted newest first.
func GroupByYear(docs []Document) []YearGroup {
	var groups []YearGroup
	index := make(map[int]int)
	for _, d := range SortByPublishedDescending(docs) {
		y := d.Year()
		i, ok := index[y]
		if !ok {
			i = len(groups)
			index[y] = i
			groups = append(groups, YearGroup{Year: y})
		}
		groups[i].Documents = append(groups[i].Documents, d)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Year > groups[j].Year })
	return groups
}

// Tags returns the distinct normalized tags of docs, sorted.
func Tags(docs []Document) []string {
	set := make(map[string]struct{})
	for _, d := range docs {
		for _, t := range d.Tags {
			if tag := normalizeTag(t); tag != "" {
				set[tag] = struct{}{}
			}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// FilterByTag keeps the docs carrying tag, in their original order.
func FilterByTag(docs []Document, tag string) []Document {
	normalized := normalizeTag(tag)
	var out []Document
	for _, d := range docs {
		for _, t := range d.Tags {
			if normalizeTag(t) == normalized {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
