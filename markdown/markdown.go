// Package markdown compiles Markdown/MDX bodies to HTML with goldmark and
// extracts their table of contents.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// TOC depth: h1 is the page title and is left out.
const (
	minTOCLevel = 2
	maxTOCLevel = 4
)

// Code block colours and the section link prepended to every heading.
const (
	highlightStyle = "monokai"
	anchorClass    = "anchor"
	anchorTitle    = "Link to section"
)

// Heading is one node of a table of contents.
type Heading struct {
	Level    int       `json:"level"`
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Children []Heading `json:"children,omitempty"`
}

// URL returns the in-page anchor for the heading.
func (h Heading) URL() string {
	return "#" + h.ID
}

// Renderer converts Markdown to HTML. It holds no per-call state and is
// safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with GFM, footnotes, typographer, highlighted code
// blocks and automatic heading IDs with section links. Raw HTML (and MDX
// component tags) pass through untouched.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				extension.Typographer,
				highlighting.NewHighlighting(
					highlighting.WithStyle(highlightStyle),
					highlighting.WithFormatOptions(chromahtml.WithLineNumbers(false)),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
				parser.WithASTTransformers(util.Prioritized(headingAnchors{}, 100)),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render returns the HTML for src and its heading tree.
func (r *Renderer) Render(src []byte) (string, []Heading, error) {
	doc := r.md.Parser().Parse(text.NewReader(src))
	toc := buildTOC(collectHeadings(doc, src))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return "", nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), toc, nil
}

// HTML returns a templ.Component writing already-compiled HTML verbatim.
func HTML(compiled string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, compiled)
		return err
	})
}

// headingAnchors prepends an empty link to the heading's own id, styled by
// the site CSS.
type headingAnchors struct{}

func (headingAnchors) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	var headings []*ast.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			headings = append(headings, h)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	for _, h := range headings {
		v, ok := h.AttributeString("id")
		if !ok {
			continue
		}
		id, ok := v.([]byte)
		if !ok || len(id) == 0 {
			continue
		}
		link := ast.NewLink()
		link.Destination = append([]byte("#"), id...)
		link.Title = []byte(anchorTitle)
		link.SetAttributeString("class", []byte(anchorClass))
		if first := h.FirstChild(); first != nil {
			h.InsertBefore(h, first, link)
		} else {
			h.AppendChild(h, link)
		}
	}
}

func collectHeadings(doc ast.Node, src []byte) []Heading {
	var flat []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level < minTOCLevel || h.Level > maxTOCLevel {
			return ast.WalkSkipChildren, nil
		}
		var id string
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		flat = append(flat, Heading{Level: h.Level, ID: id, Text: plainText(h, src)})
		return ast.WalkSkipChildren, nil
	})
	return flat
}

// buildTOC nests a flat heading list by level. A heading deeper than its
// predecessor becomes its child; skipped levels attach to the nearest
// shallower heading.
func buildTOC(flat []Heading) []Heading {
	var build func(i, parentLevel int) ([]Heading, int)
	build = func(i, parentLevel int) ([]Heading, int) {
		var out []Heading
		for i < len(flat) && flat[i].Level > parentLevel {
			h := flat[i]
			h.Children, i = build(i+1, h.Level)
			out = append(out, h)
		}
		return out, i
	}
	toc, _ := build(0, 0)
	return toc
}

func plainText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.SoftLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return buf.String()
}
