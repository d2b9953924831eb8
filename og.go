package folio

import (
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	ogWidth  = 1200
	ogHeight = 630
	ogScale  = 4
	ogMargin = 12 // unscaled pixels
)

var (
	ogBackground = color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}
	ogForeground = color.RGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}
	ogMuted      = color.RGBA{R: 0xa3, G: 0xa3, B: 0xa3, A: 0xff}
	ogAccent     = color.RGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
)

// OpenGraphCard draws the fallback social card for a page without a cover
// image. Text is laid out on a quarter-size canvas in a bitmap font and
// scaled up.
func OpenGraphCard(siteName, title, description string) image.Image {
	w, h := ogWidth/ogScale, ogHeight/ogScale
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(small, small.Bounds(), image.NewUniform(ogBackground), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	cols := (w - 2*ogMargin) / face.Advance
	lineHeight := face.Metrics().Height.Ceil()

	d := &font.Drawer{Dst: small, Src: image.NewUniform(ogForeground), Face: face}
	y := ogMargin + lineHeight
	for _, line := range wrapText(title, cols, 4) {
		d.Dot = fixed.P(ogMargin, y)
		d.DrawString(line)
		y += lineHeight
	}
	y += lineHeight / 2
	d.Src = image.NewUniform(ogMuted)
	for _, line := range wrapText(description, cols, 3) {
		d.Dot = fixed.P(ogMargin, y)
		d.DrawString(line)
		y += lineHeight
	}
	d.Src = image.NewUniform(ogAccent)
	d.Dot = fixed.P(ogMargin, h-ogMargin)
	d.DrawString(runewidth.Truncate(siteName, cols, "..."))

	dst := image.NewRGBA(image.Rect(0, 0, ogWidth, ogHeight))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)
	return dst
}

// wrapText breaks s into lines of at most cols display columns, keeping at
// most maxLines and marking the cut with "...".
func wrapText(s string, cols, maxLines int) []string {
	var lines []string
	cur := ""
	for _, word := range strings.Fields(s) {
		switch {
		case cur == "":
			cur = word
		case runewidth.StringWidth(cur)+1+runewidth.StringWidth(word) <= cols:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	truncated := len(lines) > maxLines
	if truncated {
		lines = lines[:maxLines]
	}
	for i, line := range lines {
		lines[i] = runewidth.Truncate(line, cols, "...")
	}
	if truncated {
		last := lines[len(lines)-1]
		lines[len(lines)-1] = runewidth.Truncate(last+" ...", cols, "...")
	}
	return lines
}

func (a *App) handleOpenGraph(c echo.Context) error {
	title := strings.TrimSpace(c.QueryParam("title"))
	if title == "" {
		title = a.Config.Site.Name
	}
	img := OpenGraphCard(a.Config.Site.Name, title, c.QueryParam("description"))

	c.Response().Header().Set(echo.HeaderContentType, "image/png")
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	if name := Slugify(title); name != "" {
		c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+name+`.png"`)
	}
	c.Response().WriteHeader(http.StatusOK)
	return png.Encode(c.Response(), img)
}
