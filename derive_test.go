package folio

import (
	"net/url"
	"strings"
	"testing"
)

func TestSlug(t *testing.T) {
	tests := []struct{ in, want string }{
		{"blog/hello-world.mdx", "/blog/hello-world"},
		{"blog/2024/recap.md", "/blog/2024/recap"},
		{"blog/series/index.md", "/blog/series"},
		{"notes/a.md", "/notes/a"},
		{"index.md", "/"},
		{`blog\windows.md`, "/blog/windows"},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugAsParamsRoundTrip(t *testing.T) {
	for _, slug := range []string{"/blog/hello-world", "/blog/2024/recap", "/notes/a"} {
		params := SlugAsParams(slug)
		segment := strings.Split(strings.TrimPrefix(slug, "/"), "/")[0]
		if got := "/" + segment + "/" + params; got != slug {
			t.Errorf("round trip of %q = %q", slug, got)
		}
	}
	if got := SlugAsParams("/about"); got != "" {
		t.Errorf("SlugAsParams(/about) = %q, want empty", got)
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"Hello, world!", 2},
		{"  one\n\ntwo   three  ", 3},
		{"don't stop", 2},
		{"--- ... !!!", 0},
		{"version 1.2 ships", 3},
	}
	for _, tt := range tests {
		if got := CountWords(tt.in); got != tt.want {
			t.Errorf("CountWords(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  string
	}{
		{0, "1 min read"},
		{1, "1 min read"},
		{200, "1 min read"},
		{201, "2 min read"},
		{1000, "5 min read"},
	}
	for _, tt := range tests {
		if got := ReadingTime(tt.words, 200); got != tt.want {
			t.Errorf("ReadingTime(%d) = %q, want %q", tt.words, got, tt.want)
		}
	}
	if got := ReadingTime(400, 0); got != "2 min read" {
		t.Errorf("ReadingTime with default speed = %q", got)
	}
}

func TestReadingTimeMonotonic(t *testing.T) {
	minutes := func(s string) int {
		var n int
		for _, r := range strings.TrimSuffix(s, " min read") {
			n = n*10 + int(r-'0')
		}
		return n
	}
	prev := 0
	for words := 0; words <= 2000; words += 7 {
		m := minutes(ReadingTime(words, DefaultWordsPerMinute))
		if m < 1 {
			t.Fatalf("ReadingTime(%d) = %d minutes", words, m)
		}
		if m < prev {
			t.Fatalf("ReadingTime(%d) = %d < %d", words, m, prev)
		}
		prev = m
	}
}

func TestIsRemoteImage(t *testing.T) {
	for ref, want := range map[string]bool{
		"/covers/a.png":               false,
		"covers/a.png":                false,
		"https://cdn.example.com/a":   true,
		"HTTP://cdn.example.com/a":    true,
		"//cdn.example.com/a.png":     true,
		"data:image/png;base64,AAAA=": true,
	} {
		if got := IsRemoteImage(ref); got != want {
			t.Errorf("IsRemoteImage(%q) = %v, want %v", ref, got, want)
		}
	}
}

func TestOpenGraphImageURL(t *testing.T) {
	if got := OpenGraphImageURL("/api/og", "/covers/a.png", "T", "D"); got != "/covers/a.png" {
		t.Errorf("with image = %q", got)
	}
	got := OpenGraphImageURL("/api/og", "", "Hello & Bye", "A description")
	u, err := url.Parse(got)
	if err != nil {
		t.Fatal(err)
	}
	if u.Path != "/api/og" || u.Query().Get("title") != "Hello & Bye" || u.Query().Get("description") != "A description" {
		t.Errorf("fallback = %q", got)
	}
	if got := OpenGraphImageURL("/api/og", "", "", ""); got != "/api/og" {
		t.Errorf("empty fallback = %q", got)
	}
}
