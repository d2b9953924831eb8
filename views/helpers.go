package views

import (
	"context"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// TagLabel formats a tag for display, e.g. "rest api" -> "Rest Api".
func TagLabel(tag string) string {
	return titleCaser.String(strings.TrimSpace(tag))
}

// TagHref links to a collection index filtered by tag.
func TagHref(collectionHref, tag string) string {
	return collectionHref + "?tag=" + url.QueryEscape(tag)
}

// PathEscape wraps url.PathEscape for use in template expressions.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	base := "inline-flex items-center rounded border px-2.5 py-1 text-[11px] font-semibold uppercase tracking-[0.12em] transition"
	if active {
		base += " bg-ink text-white"
	}
	return base
}

// BlurStyle returns the inline style that paints the placeholder behind an
// image while it loads.
func BlurStyle(blur string) string {
	if blur == "" {
		return ""
	}
	return "background-size:cover;background-image:url(data:image/jpeg;base64," + blur + ")"
}

// writer accumulates the first write error so templates read top to bottom.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *writer {
	return &writer{ctx: ctx, w: w}
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) {
	w.raw(html.EscapeString(s))
}

// attr writes ` name="value"`, skipping empty values.
func (w *writer) attr(name, value string) {
	if value == "" {
		return
	}
	w.raw(" " + name + `="` + html.EscapeString(value) + `"`)
}

func (w *writer) component(c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(w.ctx, w.w)
	}
}

func (w *writer) tags(collectionHref string, tags []string, active string) {
	if len(tags) == 0 {
		return
	}
	w.raw(`<ul class="tags">`)
	for _, t := range tags {
		w.raw(`<li><a`)
		w.attr("href", TagHref(collectionHref, t))
		w.attr("class", TagClass(strings.EqualFold(t, active)))
		w.raw(">")
		w.text(TagLabel(t))
		w.raw("</a></li>")
	}
	w.raw("</ul>")
}
