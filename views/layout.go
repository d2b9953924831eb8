package views

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// Layout wraps body in the HTML shell: head with SEO tags, header
// navigation and footer.
func Layout(site Site, meta Meta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		lang := site.Language
		if lang == "" {
			lang = "en"
		}
		title := site.Name
		if meta.Title != "" && meta.Title != site.Name {
			title = meta.Title + " | " + site.Name
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}

		w.raw(`<!doctype html><html`)
		w.attr("lang", lang)
		w.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw("<title>")
		w.text(title)
		w.raw("</title>")
		w.raw(`<meta name="description"`)
		w.attr("content", meta.Description)
		w.raw(`><link rel="canonical"`)
		w.attr("href", meta.URL)
		w.raw(`><meta property="og:title"`)
		w.attr("content", title)
		w.raw(`><meta property="og:description"`)
		w.attr("content", meta.Description)
		w.raw(`><meta property="og:type"`)
		w.attr("content", ogType)
		w.raw(`><meta property="og:url"`)
		w.attr("content", meta.URL)
		w.raw(">")
		if meta.Image != "" {
			w.raw(`<meta property="og:image"`)
			w.attr("content", meta.Image)
			w.raw(`><meta name="twitter:card" content="summary_large_image">`)
		}
		w.raw(`<link rel="alternate" type="application/rss+xml" href="/rss.xml"`)
		w.attr("title", site.Name)
		w.raw(`><link rel="stylesheet" href="/public/styles.css">`)
		if meta.JSONLD != "" {
			// JSON-LD comes from encoding/json, which escapes "<" and ">".
			w.raw(`<script type="application/ld+json">`)
			w.raw(meta.JSONLD)
			w.raw("</script>")
		}
		w.raw("</head><body><header><nav>")
		w.raw(`<a href="/" class="brand">`)
		w.text(site.Name)
		w.raw("</a>")
		for _, l := range site.Nav {
			w.raw("<a")
			w.attr("href", l.Href)
			w.raw(">")
			w.text(l.Label)
			w.raw("</a>")
		}
		w.raw("</nav></header><main>")
		w.component(body)
		w.raw("</main><footer>")
		w.text(copyright(site, time.Now().Year()))
		w.raw("</footer></body></html>")
		return w.err
	})
}

// copyright renders "© 2024 - 2026 Author" or "© 2026 Author".
func copyright(site Site, year int) string {
	holder := site.Author
	if holder == "" {
		holder = site.Name
	}
	years := strconv.Itoa(year)
	if site.StartYear > 0 && site.StartYear < year {
		years = strconv.Itoa(site.StartYear) + " - " + years
	}
	return "© " + years + " " + holder
}
