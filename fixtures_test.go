package folio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile creates root/rel with content, making parent directories.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// post renders a blog file with YAML front matter. extra lines are added
// to the front matter verbatim.
func post(title, date, body string, extra ...string) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", title)
	fmt.Fprintf(&b, "description: %q\n", "About "+title)
	fmt.Fprintf(&b, "publishedOn: %s\n", date)
	for _, line := range extra {
		b.WriteString(line + "\n")
	}
	b.WriteString("---\n")
	b.WriteString(body)
	return b.String()
}

// writePNG writes a w x h gradient PNG.
func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 0x80, A: 0xff})
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// testConfig returns a config rooted in fresh temp directories.
func testConfig(t *testing.T) Config {
	t.Helper()
	root := t.TempDir()
	content := filepath.Join(root, "content")
	assets := filepath.Join(root, "public")
	for _, dir := range []string{content, assets} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return Config{
		Site:       SiteConfig{Name: "Test Blog", URL: "https://example.com", Author: "Ada"},
		ContentDir: content,
		AssetsDir:  assets,
	}
}
