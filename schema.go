package folio

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldType is the declared type of a front-matter field.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeDate   FieldType = "date"
	TypeList   FieldType = "list" // list of strings
	TypeBool   FieldType = "bool"
	TypeNumber FieldType = "number"
)

// Built-in field names mapped onto Document.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldPublishedOn = "publishedOn"
	fieldUpdatedOn   = "updatedOn"
	fieldTags        = "tags"
	defaultImageName = "image"
)

// Field declares one front-matter key of a content type.
type Field struct {
	Name     string    `yaml:"name"`
	Type     FieldType `yaml:"type"`
	Required bool      `yaml:"required"`
	Enum     []string  `yaml:"enum"`
}

// Schema is the declarative definition of a content type's front matter.
type Schema struct {
	Fields []Field `yaml:"fields"`
	// ImageField names the field holding the cover image (default "image").
	ImageField string `yaml:"image_field"`
}

func (s Schema) imageField() string {
	if s.ImageField == "" {
		return defaultImageName
	}
	return s.ImageField
}

func (s Schema) field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// BlogTags is the tag vocabulary of the blog collection.
var BlogTags = []string{
	"ai", "api", "animation", "coding", "death", "documentation", "html",
	"internet", "javascript", "json schema", "learning", "life", "mongodb",
	"programming", "rest api", "remix", "software engineering", "speaking",
	"tailwindcss", "typescript", "web", "writing", "youtube", "zod",
}

// BlogSchema returns the schema of long-form blog posts.
func BlogSchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: fieldTitle, Type: TypeString, Required: true},
			{Name: fieldDescription, Type: TypeString, Required: true},
			{Name: fieldPublishedOn, Type: TypeDate, Required: true},
			{Name: fieldUpdatedOn, Type: TypeDate},
			{Name: fieldTags, Type: TypeList, Enum: append([]string(nil), BlogTags...)},
			{Name: defaultImageName, Type: TypeString},
		},
	}
}

// NotesSchema returns the schema of short notes, which carry no tags or image.
func NotesSchema() Schema {
	return Schema{
		Fields: []Field{
			{Name: fieldTitle, Type: TypeString, Required: true},
			{Name: fieldDescription, Type: TypeString, Required: true},
			{Name: fieldPublishedOn, Type: TypeDate, Required: true},
			{Name: fieldUpdatedOn, Type: TypeDate},
		},
	}
}

// Validate checks the schema definition itself.
func (s Schema) Validate() error {
	errs := validation.Errors{}
	seen := make(map[string]struct{}, len(s.Fields))
	for i, f := range s.Fields {
		key := fmt.Sprintf("fields[%d]", i)
		if strings.TrimSpace(f.Name) == "" {
			errs[key] = validation.NewError("schema.field.name_required", "name is required")
			continue
		}
		if _, dup := seen[f.Name]; dup {
			errs[f.Name] = validation.NewError("schema.field.duplicate", "field is declared more than once")
			continue
		}
		seen[f.Name] = struct{}{}
		if err := validation.Validate(f.Type, validation.Required,
			validation.In(TypeString, TypeDate, TypeList, TypeBool, TypeNumber)); err != nil {
			errs[f.Name] = err
			continue
		}
		if len(f.Enum) > 0 && f.Type != TypeString && f.Type != TypeList {
			errs[f.Name] = validation.NewError("schema.field.enum_type", "enum is only allowed on string and list fields")
		}
	}

	required := []struct {
		name string
		typ  FieldType
	}{
		{fieldTitle, TypeString},
		{fieldDescription, TypeString},
		{fieldPublishedOn, TypeDate},
	}
	for _, r := range required {
		f, ok := s.field(r.name)
		if !ok || !f.Required || f.Type != r.typ {
			errs[r.name] = validation.NewError("schema.builtin.required",
				fmt.Sprintf("must be declared as a required %s field", r.typ))
		}
	}
	optional := []struct {
		name string
		typ  FieldType
	}{
		{fieldUpdatedOn, TypeDate},
		{fieldTags, TypeList},
		{s.imageField(), TypeString},
	}
	for _, o := range optional {
		if f, ok := s.field(o.name); ok && f.Type != o.typ {
			errs[o.name] = validation.NewError("schema.builtin.type",
				fmt.Sprintf("must be a %s field", o.typ))
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateFrontMatter applies the schema to fm field by field and returns
// the coerced values keyed by field name.
func (s Schema) validateFrontMatter(fm FrontMatter) (map[string]any, error) {
	values := make(map[string]any, len(s.Fields))
	errs := validation.Errors{}
	for _, f := range s.Fields {
		raw, ok := fm[f.Name]
		if !ok || raw == nil {
			if f.Required {
				errs[f.Name] = validation.NewError("validation_required", "is required")
			}
			continue
		}
		v, err := f.coerce(raw)
		if err != nil {
			errs[f.Name] = err
			continue
		}
		values[f.Name] = v
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

func (f Field) coerce(raw any) (any, error) {
	switch f.Type {
	case TypeString:
		s, ok := raw.(string)
		if !ok {
			return nil, validation.NewError("validation_type", fmt.Sprintf("must be a string, got %T", raw))
		}
		if f.Required {
			if err := validation.Validate(strings.TrimSpace(s), validation.Required); err != nil {
				return nil, err
			}
		}
		if err := f.checkEnum(s); err != nil {
			return nil, err
		}
		return s, nil
	case TypeDate:
		t, err := coerceDate(raw)
		if err != nil {
			return nil, validation.NewError("validation_date", err.Error())
		}
		return t, nil
	case TypeList:
		items, ok := raw.([]any)
		if !ok {
			if typed, isStrings := raw.([]string); isStrings {
				return f.coerceStrings(typed)
			}
			return nil, validation.NewError("validation_type", fmt.Sprintf("must be a list, got %T", raw))
		}
		list := make([]string, 0, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, validation.NewError("validation_type", fmt.Sprintf("item %d must be a string, got %T", i, item))
			}
			list = append(list, s)
		}
		return f.coerceStrings(list)
	case TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, validation.NewError("validation_type", fmt.Sprintf("must be a boolean, got %T", raw))
		}
		return b, nil
	case TypeNumber:
		switch n := raw.(type) {
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case float64:
			return n, nil
		}
		return nil, validation.NewError("validation_type", fmt.Sprintf("must be a number, got %T", raw))
	}
	return nil, validation.NewError("validation_type", fmt.Sprintf("unknown field type %q", f.Type))
}

func (f Field) coerceStrings(list []string) ([]string, error) {
	for _, s := range list {
		if err := f.checkEnum(s); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (f Field) checkEnum(value string) error {
	if len(f.Enum) == 0 {
		return nil
	}
	allowed := make([]any, len(f.Enum))
	for i, e := range f.Enum {
		allowed[i] = e
	}
	msg := fmt.Sprintf("%q is not one of the allowed values [%s]", value, strings.Join(f.Enum, ", "))
	return validation.Validate(value, validation.In(allowed...).Error(msg))
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// coerceDate accepts native timestamps and the common string layouts.
func coerceDate(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%q is not a date (use YYYY-MM-DD or RFC 3339)", v)
	}
	return time.Time{}, fmt.Errorf("must be a date, got %T", raw)
}
