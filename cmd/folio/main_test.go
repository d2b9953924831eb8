package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatTable(t *testing.T) {
	lines := formatTable([][]string{
		{"A", "TITLE", "END"},
		{"blog", "日本語", "x"},
		{"notes", "abc", "y"},
	})
	want := []string{
		"A      TITLE   END",
		"blog   日本語  x",
		"notes  abc     y",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("table =\n%s\nwant\n%s", strings.Join(lines, "\n"), strings.Join(want, "\n"))
	}
}

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"content/blog/hello.md":  "---\ntitle: Hello\ndescription: First post\npublishedOn: 2024-01-10\ntags: [\"web\"]\n---\nHello there.\n",
		"content/notes/til.md":   "---\ntitle: TIL\ndescription: A note\npublishedOn: 2024-02-01\n---\nNote.\n",
		"content/blog/broken.md": "---\ntitle: Broken\ndescription: Bad tag\npublishedOn: 2024-01-11\ntags: [\"nonexistent-tag\"]\n---\n",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := "content_dir: " + filepath.Join(dir, "content") + "\nassets_dir: " + filepath.Join(dir, "public") + "\n"
	if err := os.WriteFile(filepath.Join(dir, "folio.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestRunBuildFailsOnInvalidFile(t *testing.T) {
	dir := writeSite(t)
	var stdout, stderr bytes.Buffer
	code := runBuild([]string{"-config", filepath.Join(dir, "folio.yaml"), "-log", "off"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit = %d, want 1; stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "nonexistent-tag") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunBuildLenient(t *testing.T) {
	dir := writeSite(t)
	out := filepath.Join(dir, "collection.json")
	var stdout, stderr bytes.Buffer
	code := runBuild([]string{"-config", filepath.Join(dir, "folio.yaml"), "-lenient", "-log", "off", "-out", out}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit = %d; stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "/blog/hello") || !strings.Contains(stdout.String(), "2 documents in 2 collections, 1 skipped") {
		t.Errorf("stdout = %s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "warning:") {
		t.Errorf("stderr = %s", stderr.String())
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var e struct {
		Documents []struct {
			Slug string `json:"slug"`
			Body struct {
				Raw string `json:"raw"`
			} `json:"body"`
		} `json:"documents"`
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("invalid export: %v", err)
	}
	if len(e.Documents) != 2 || len(e.Warnings) != 1 {
		t.Fatalf("export = %+v", e)
	}
	if e.Documents[0].Slug != "/blog/hello" || !strings.Contains(e.Documents[0].Body.Raw, "Hello there.") {
		t.Errorf("first document = %+v", e.Documents[0])
	}
}

func TestRunBuildConfigError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runBuild([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, &stdout, &stderr)
	if code != 2 {
		t.Errorf("exit = %d, want 2", code)
	}
}

func TestRunBuildReportsPlaceholderCache(t *testing.T) {
	dir := t.TempDir()
	content := filepath.Join(dir, "content", "blog")
	public := filepath.Join(dir, "public")
	for _, d := range []string{content, public} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	post := "---\ntitle: Cover\ndescription: Has a cover\npublishedOn: 2024-01-10\nimage: /cover.png\n---\nBody.\n"
	if err := os.WriteFile(filepath.Join(content, "cover.md"), []byte(post), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(filepath.Join(public, "cover.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	cachePath := filepath.Join(dir, "cache.db")
	cfg := "content_dir: " + filepath.Join(dir, "content") + "\nassets_dir: " + public + "\ncache_path: " + cachePath + "\n"
	cfgPath := filepath.Join(dir, "folio.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	if code := runBuild([]string{"-config", cfgPath, "-log", "off"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit = %d; stderr: %s", code, stderr.String())
	}
	if want := "1 image placeholders cached in " + cachePath; !strings.Contains(stdout.String(), want) {
		t.Errorf("stdout = %s, want %q", stdout.String(), want)
	}
}
