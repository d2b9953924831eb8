package folio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eringen/folio/markdown"
)

type builder struct {
	cfg      Config
	logger   Logger
	cache    PlaceholderCache
	renderer *markdown.Renderer

	mu       sync.Mutex
	warnings []error
}

type job struct {
	file   RawFile
	schema Schema
}

// Build runs discovery, parsing, derivation and assembly for every
// configured collection and returns the resulting Collection. Any fatal
// error aborts the whole run; no partial collection is returned.
func Build(ctx context.Context, cfg Config, opts ...Option) (*Collection, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &builder{
		cfg:      cfg,
		logger:   discardLogger(),
		renderer: markdown.New(),
	}
	for _, opt := range opts {
		opt(b)
	}

	start := time.Now()
	var jobs []job
	for _, col := range cfg.Collections {
		files, err := Discover(cfg.ContentDir, col.Pattern, col.Extensions)
		if err != nil {
			return nil, err
		}
		b.logger.Debugf("collection %s: %d files match %s", col.Name, len(files), col.Pattern)
		for _, f := range files {
			f.Collection = col.Name
			jobs = append(jobs, job{file: f, schema: col.Schema})
		}
	}

	docs := make([]Document, len(jobs))
	ok := make([]bool, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := b.process(j)
			if err != nil {
				if b.cfg.Lenient && isFileError(err) {
					b.warn(err)
					return nil
				}
				return err
			}
			docs[i] = doc
			ok[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := make([]Document, 0, len(docs))
	for i, d := range docs {
		if ok[i] {
			kept = append(kept, d)
		}
	}
	c, err := newCollection(kept)
	if err != nil {
		return nil, err
	}
	sort.Slice(b.warnings, func(i, j int) bool { return b.warnings[i].Error() < b.warnings[j].Error() })
	c.warnings = b.warnings
	b.logger.Infof("built %d documents in %s (%d skipped)", c.Len(), time.Since(start).Round(time.Millisecond), len(b.warnings))
	return c, nil
}

// process parses and derives a single file. It owns all of its
// intermediate state.
func (b *builder) process(j job) (Document, error) {
	path := filepath.Join(b.cfg.ContentDir, filepath.FromSlash(j.file.Path))
	src, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("%w: read %s: %v", ErrDiscovery, j.file.Path, err)
	}
	doc, err := ParseFile(j.file, src, j.schema)
	if err != nil {
		return Document{}, err
	}
	return b.derive(doc)
}

func (b *builder) derive(doc Document) (Document, error) {
	doc.Slug = Slug(doc.SourcePath)
	doc.SlugAsParams = SlugAsParams(doc.Slug)
	if doc.SlugAsParams == "" {
		// The collection root is served by the collection index page.
		return Document{}, &FileError{Kind: ErrDerivation, Path: doc.SourcePath, Field: "slug",
			Err: fmt.Errorf("%s is reserved for the collection index", doc.Slug)}
	}
	doc.WordCount = CountWords(doc.Body.Raw)
	doc.ReadingTime = ReadingTime(doc.WordCount, b.cfg.WordsPerMinute)
	doc.OpenGraphImage = OpenGraphImageURL(b.cfg.OpenGraphEndpoint, doc.Image, doc.Title, doc.Description)

	blur, err := imageBlur(b.cfg.AssetsDir, doc.Image, b.cache)
	if err != nil {
		return Document{}, &FileError{Kind: ErrDerivation, Path: doc.SourcePath, Field: "image", Err: err}
	}
	doc.ImageBlur = blur

	if !b.cfg.SkipRender {
		html, toc, err := b.renderer.Render([]byte(doc.Body.Raw))
		if err != nil {
			return Document{}, &FileError{Kind: ErrDerivation, Path: doc.SourcePath, Field: "body", Err: err}
		}
		doc.Body.HTML = html
		doc.TOC = toc
	}
	b.logger.Debugf("derived %s (%s)", doc.Slug, doc.ReadingTime)
	return doc, nil
}

func (b *builder) warn(err error) {
	b.mu.Lock()
	b.warnings = append(b.warnings, err)
	b.mu.Unlock()
	b.logger.Warnf("skipping: %v", err)
}

func isFileError(err error) bool {
	var fe *FileError
	return errors.As(err, &fe)
}
