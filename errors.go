package folio

import (
	"errors"
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error kinds. Every error returned by Build matches exactly one of them
// with errors.Is.
var (
	ErrConfig        = errors.New("configuration error")
	ErrDiscovery     = errors.New("discovery error")
	ErrSyntax        = errors.New("front matter syntax error")
	ErrValidation    = errors.New("validation error")
	ErrDerivation    = errors.New("derivation error")
	ErrDuplicateSlug = errors.New("duplicate slug")
)

// FileError attributes a pipeline failure to a single content file.
type FileError struct {
	Kind  error
	Path  string
	Field string
	Err   error
}

func (e *FileError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%v: %s: %s: %v", e.Kind, e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

func (e *FileError) Is(target error) bool { return target == e.Kind }

// Fields lists the offending front-matter fields of a validation failure.
func (e *FileError) Fields() []string {
	var errs validation.Errors
	if !errors.As(e.Err, &errs) {
		if e.Field != "" {
			return []string{e.Field}
		}
		return nil
	}
	fields := make([]string, 0, len(errs))
	for k := range errs {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}
