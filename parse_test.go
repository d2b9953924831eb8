package folio

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestSplitFrontMatterYAML(t *testing.T) {
	fm, body, err := SplitFrontMatter([]byte("---\ntitle: Hello\n---\n# Body\n"))
	if err != nil {
		t.Fatalf("SplitFrontMatter: %v", err)
	}
	if fm["title"] != "Hello" {
		t.Errorf("title = %v", fm["title"])
	}
	if !strings.Contains(string(body), "# Body") {
		t.Errorf("body = %q", body)
	}
}

func TestSplitFrontMatterTOML(t *testing.T) {
	fm, _, err := SplitFrontMatter([]byte("+++\ntitle = \"Hello\"\n+++\nbody\n"))
	if err != nil {
		t.Fatalf("SplitFrontMatter: %v", err)
	}
	if fm["title"] != "Hello" {
		t.Errorf("title = %v", fm["title"])
	}
}

func TestSplitFrontMatterMissing(t *testing.T) {
	fm, body, err := SplitFrontMatter([]byte("just text\n"))
	if err != nil {
		t.Fatalf("SplitFrontMatter: %v", err)
	}
	if len(fm) != 0 {
		t.Errorf("front matter = %v, want empty", fm)
	}
	if !strings.Contains(string(body), "just text") {
		t.Errorf("body = %q", body)
	}
}

func TestParseFileConforming(t *testing.T) {
	src := post("Hello World", "2024-01-10", "Some body text.\n",
		`updatedOn: 2024-02-01`,
		`tags: ["web", "writing"]`,
		`image: "/covers/hello.png"`,
		`series: "intro"`,
	)
	schema := BlogSchema()
	schema.Fields = append(schema.Fields, Field{Name: "series", Type: TypeString})

	doc, err := ParseFile(RawFile{Path: "blog/hello.md", Collection: "blog"}, []byte(src), schema)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if doc.Title != "Hello World" || doc.Description != "About Hello World" {
		t.Errorf("title/description = %q / %q", doc.Title, doc.Description)
	}
	if !doc.PublishedOn.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("publishedOn = %v", doc.PublishedOn)
	}
	if doc.UpdatedOn == nil || doc.UpdatedOn.Day() != 1 {
		t.Errorf("updatedOn = %v", doc.UpdatedOn)
	}
	if !reflect.DeepEqual(doc.Tags, []string{"web", "writing"}) {
		t.Errorf("tags = %v", doc.Tags)
	}
	if doc.Image != "/covers/hello.png" {
		t.Errorf("image = %q", doc.Image)
	}
	if doc.Extra["series"] != "intro" {
		t.Errorf("extra = %v", doc.Extra)
	}
	if doc.Collection != "blog" || doc.SourcePath != "blog/hello.md" {
		t.Errorf("collection/source = %q / %q", doc.Collection, doc.SourcePath)
	}
	if !strings.Contains(doc.Body.Raw, "Some body text.") {
		t.Errorf("body = %q", doc.Body.Raw)
	}
	if doc.Slug != "" || doc.ReadingTime != "" {
		t.Errorf("derived fields set during parse: %q %q", doc.Slug, doc.ReadingTime)
	}
}

func TestParseFileRFC3339Date(t *testing.T) {
	src := post("Timed", "2024-01-10T08:30:00Z", "")
	doc, err := ParseFile(RawFile{Path: "notes/timed.md"}, []byte(src), NotesSchema())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if doc.PublishedOn.Hour() != 8 || doc.PublishedOn.Minute() != 30 {
		t.Errorf("publishedOn = %v", doc.PublishedOn)
	}
}

func TestParseFileUnknownTag(t *testing.T) {
	src := post("Bad Tag", "2024-01-10", "", `tags: ["nonexistent-tag"]`)
	_, err := ParseFile(RawFile{Path: "blog/bad.md"}, []byte(src), BlogSchema())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if !strings.Contains(err.Error(), "nonexistent-tag") {
		t.Errorf("error %q does not name the tag", err)
	}
	var fe *FileError
	if !errors.As(err, &fe) || fe.Path != "blog/bad.md" || fe.Field != "tags" {
		t.Errorf("FileError = %+v", fe)
	}
}

func TestParseFileMissingRequired(t *testing.T) {
	src := "---\ntitle: Only a title\n---\n"
	_, err := ParseFile(RawFile{Path: "blog/partial.md"}, []byte(src), BlogSchema())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	var fe *FileError
	if !errors.As(err, &fe) {
		t.Fatalf("err %T is not a FileError", err)
	}
	want := []string{"description", "publishedOn"}
	if got := fe.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields = %v, want %v", got, want)
	}
}

func TestParseFileWrongType(t *testing.T) {
	tests := []struct {
		name  string
		extra string
		field string
	}{
		{"tags not a list", `tags: "web"`, "tags"},
		{"bad date", `updatedOn: "yesterday"`, "updatedOn"},
		{"image not a string", `image: 42`, "image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := post("Typed", "2024-01-10", "", tt.extra)
			_, err := ParseFile(RawFile{Path: "blog/typed.md"}, []byte(src), BlogSchema())
			var fe *FileError
			if !errors.As(err, &fe) || !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want validation FileError", err)
			}
			if fe.Field != tt.field {
				t.Errorf("field = %q, want %q", fe.Field, tt.field)
			}
		})
	}
}

func TestParseFileEmptyTitle(t *testing.T) {
	src := "---\ntitle: \"  \"\ndescription: d\npublishedOn: 2024-01-10\n---\n"
	_, err := ParseFile(RawFile{Path: "notes/blank.md"}, []byte(src), NotesSchema())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestParseFileSyntaxError(t *testing.T) {
	src := "---\ntitle: [unclosed\n---\nbody\n"
	_, err := ParseFile(RawFile{Path: "blog/broken.md"}, []byte(src), BlogSchema())
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("err = %v, want ErrSyntax", err)
	}
	if !strings.Contains(err.Error(), "blog/broken.md") {
		t.Errorf("error %q does not name the file", err)
	}
}
