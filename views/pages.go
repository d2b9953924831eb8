package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio/markdown"
)

// Home lists the most recent blog posts and the quote of the day.
func Home(site Site, recent []Entry, quote *Quote) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<section class="intro"><h1>`)
		w.text(site.Name)
		w.raw("</h1>")
		if site.Description != "" {
			w.raw("<p>")
			w.text(site.Description)
			w.raw("</p>")
		}
		w.raw("</section>")

		w.raw(`<section class="recent"><h2>Recent Posts</h2>`)
		if len(recent) == 0 {
			w.raw("<p>Nothing published yet.</p>")
		} else {
			w.raw("<ul>")
			for _, e := range recent {
				w.raw("<li><a")
				w.attr("href", e.Href)
				w.raw("><p>")
				w.text(e.Title)
				w.raw("</p><p><time")
				w.attr("datetime", e.ISODate)
				w.raw(">")
				w.text(e.Date)
				w.raw("</time></p></a></li>")
			}
			w.raw("</ul>")
		}
		w.raw("</section>")

		if quote != nil {
			w.raw(`<section class="quote"><h2>Dev Wisdom</h2><blockquote><p>`)
			w.text(quote.Text)
			w.raw("</p><footer>")
			w.text(quote.Author)
			w.raw("</footer></blockquote></section>")
		}
		return w.err
	})
}

// CollectionIndex lists a collection grouped by year, newest first.
func CollectionIndex(title, description, href string, groups []Group, tags []string, activeTag string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<section class="collection"><h1>`)
		w.text(title)
		w.raw("</h1>")
		if description != "" {
			w.raw("<p>")
			w.text(description)
			w.raw("</p>")
		}
		w.tags(href, tags, activeTag)
		if activeTag != "" {
			w.raw(`<p class="filter">Tagged <strong>`)
			w.text(TagLabel(activeTag))
			w.raw(`</strong> <a`)
			w.attr("href", href)
			w.raw(">clear</a></p>")
		}
		if len(groups) == 0 {
			w.raw("<p>No entries found.</p>")
		}
		for _, g := range groups {
			w.raw(`<section class="year"><h2>`)
			w.raw(strconv.Itoa(g.Year))
			w.raw("</h2><ul>")
			for _, e := range g.Entries {
				w.raw("<li><a")
				w.attr("href", e.Href)
				w.raw("><span>")
				w.text(e.Title)
				w.raw("</span> <time")
				w.attr("datetime", e.ISODate)
				w.raw(">")
				w.text(e.ShortDate)
				w.raw("</time></a></li>")
			}
			w.raw("</ul></section>")
		}
		w.raw("</section>")
		return w.err
	})
}

// DocumentPage renders one document with its cover, table of contents and
// related entries.
func DocumentPage(entry Entry, collectionHref string, related []Entry) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<article><header><h1>`)
		w.text(entry.Title)
		w.raw("</h1><p>")
		w.text(entry.Description)
		w.raw(`</p><p class="meta">Published on <time`)
		w.attr("datetime", entry.ISODate)
		w.raw(">")
		w.text(entry.Date)
		w.raw("</time>")
		if entry.ReadingTime != "" {
			w.raw(" &bull; ")
			w.text(entry.ReadingTime)
		}
		if entry.Updated != "" {
			w.raw(" &bull; Updated on ")
			w.text(entry.Updated)
		}
		w.raw("</p>")
		w.tags(collectionHref, entry.Tags, "")
		w.raw("</header>")

		if entry.Image != "" {
			w.raw(`<img class="cover"`)
			w.attr("src", entry.Image)
			w.attr("alt", entry.Title)
			w.attr("style", BlurStyle(entry.ImageBlur))
			w.raw(` loading="lazy">`)
		}
		if len(entry.TOC) > 0 {
			w.raw(`<aside class="toc"><h2>On this page</h2>`)
			toc(w, entry.TOC)
			w.raw("</aside>")
		}
		w.raw(`<div class="prose">`)
		w.component(markdown.HTML(entry.HTML))
		w.raw("</div></article>")

		if len(related) > 0 {
			w.raw(`<section class="related"><h2>Related</h2><ul>`)
			for _, r := range related {
				w.raw("<li><a")
				w.attr("href", r.Href)
				w.raw(">")
				w.text(r.Title)
				w.raw("</a></li>")
			}
			w.raw("</ul></section>")
		}
		w.raw(`<p><a`)
		w.attr("href", collectionHref)
		w.raw(">&larr; Back</a></p>")
		return w.err
	})
}

func toc(w *writer, headings []markdown.Heading) {
	w.raw("<ul>")
	for _, h := range headings {
		w.raw("<li><a")
		w.attr("href", h.URL())
		w.raw(">")
		w.text(h.Text)
		w.raw("</a>")
		if len(h.Children) > 0 {
			toc(w, h.Children)
		}
		w.raw("</li>")
	}
	w.raw("</ul>")
}

// NotFound is the 404 page body.
func NotFound() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<section class="error"><h1>Page not found</h1><p>The page you are looking for does not exist.</p><p><a href="/">Go home</a></p></section>`)
		return w.err
	})
}

// ServerError is the 5xx page body.
func ServerError() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<section class="error"><h1>Something went wrong</h1><p>Please try again later.</p></section>`)
		return w.err
	})
}
