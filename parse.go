package folio

import (
	"bytes"
	"errors"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// SplitFrontMatter separates the metadata block at the start of src from
// the body. Files without a block yield an empty FrontMatter and the whole
// input as body.
func SplitFrontMatter(src []byte) (FrontMatter, []byte, error) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta, frontMatterFormats...)
	if err != nil {
		return nil, nil, err
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return FrontMatter(meta), body, nil
}

// ParseFile validates a file's front matter against schema and returns a
// Document with the schema fields populated and the body kept verbatim.
// Derived fields are left empty.
func ParseFile(file RawFile, src []byte, schema Schema) (Document, error) {
	fm, body, err := SplitFrontMatter(src)
	if err != nil {
		return Document{}, &FileError{Kind: ErrSyntax, Path: file.Path, Err: err}
	}

	values, err := schema.validateFrontMatter(fm)
	if err != nil {
		fe := &FileError{Kind: ErrValidation, Path: file.Path, Err: err}
		var errs validation.Errors
		if errors.As(err, &errs) && len(errs) == 1 {
			for field, fieldErr := range errs {
				fe.Field = field
				fe.Err = fieldErr
			}
		}
		return Document{}, fe
	}

	doc := Document{
		Collection: file.Collection,
		SourcePath: file.Path,
		Body:       Body{Raw: string(body)},
	}
	imageField := schema.imageField()
	for name, v := range values {
		switch t := v.(type) {
		case string:
			switch name {
			case fieldTitle:
				doc.Title = t
				continue
			case fieldDescription:
				doc.Description = t
				continue
			case imageField:
				doc.Image = t
				continue
			}
		case time.Time:
			switch name {
			case fieldPublishedOn:
				doc.PublishedOn = t
				continue
			case fieldUpdatedOn:
				doc.UpdatedOn = &t
				continue
			}
		case []string:
			if name == fieldTags {
				doc.Tags = t
				continue
			}
		}
		if doc.Extra == nil {
			doc.Extra = make(map[string]any)
		}
		doc.Extra[name] = v
	}
	return doc, nil
}
