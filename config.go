package folio

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// SiteConfig holds the site identity used by feeds, sitemaps and pages.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Blog")
	URL         string `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and meta tags
	Author      string `yaml:"author"`      // Author name for JSON-LD and copyright
	Language    string `yaml:"language"`    // Feed language (default "en")
	Addr        string `yaml:"addr"`        // Listen address (default ":3000")
}

// CollectionConfig declares one content type.
type CollectionConfig struct {
	Name       string   `yaml:"name"`
	Pattern    string   `yaml:"pattern"`    // glob relative to the content root, e.g. "blog/**/*.mdx"
	Extensions []string `yaml:"extensions"` // default .md and .mdx
	Preset     string   `yaml:"preset"`     // "blog" or "notes"; used when Schema has no fields
	Schema     Schema   `yaml:"schema"`
}

// Config holds all configuration for a folio build.
type Config struct {
	Site        SiteConfig         `yaml:"site"`
	ContentDir  string             `yaml:"content_dir"` // default "content"
	AssetsDir   string             `yaml:"assets_dir"`  // default "public"
	Collections []CollectionConfig `yaml:"collections"` // default blog + notes

	WordsPerMinute    int    `yaml:"words_per_minute"`    // default 200
	Concurrency       int    `yaml:"concurrency"`         // default GOMAXPROCS
	OpenGraphEndpoint string `yaml:"open_graph_endpoint"` // default "/api/og"
	SkipRender        bool   `yaml:"skip_render"`         // leave Body.HTML and TOC empty

	// Lenient skips files that fail parsing or derivation and reports them
	// through Collection.Warnings instead of failing the build.
	Lenient bool `yaml:"lenient"`

	CachePath  string        `yaml:"cache_path"`  // SQLite placeholder cache; "" disables
	CacheTTL   time.Duration `yaml:"cache_ttl"`   // collection reload interval for serve (default 1m)
	QuotesPath string        `yaml:"quotes_path"` // YAML quote list for the home page
	StaticDir  string        `yaml:"static_dir"`  // served under /public (default AssetsDir)
	RateLimit  int           `yaml:"rate_limit"`  // /api requests per minute per client (default 120, negative disables)
	StartYear  int           `yaml:"start_year"`  // first copyright year in the footer and feed
}

// DefaultCollections returns the blog and notes content types.
func DefaultCollections() []CollectionConfig {
	return []CollectionConfig{
		{Name: "blog", Pattern: "blog/**/*.{md,mdx}", Preset: "blog"},
		{Name: "notes", Pattern: "notes/**/*.md", Preset: "notes"},
	}
}

func (c *Config) setDefaults() {
	if c.Site.Name == "" {
		c.Site.Name = "Blog"
	}
	if c.Site.URL == "" {
		c.Site.URL = "http://localhost:3000"
	}
	if c.Site.Language == "" {
		c.Site.Language = "en"
	}
	if c.Site.Addr == "" {
		c.Site.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.AssetsDir == "" {
		c.AssetsDir = "public"
	}
	if len(c.Collections) == 0 {
		c.Collections = DefaultCollections()
	}
	for i := range c.Collections {
		col := &c.Collections[i]
		if len(col.Extensions) == 0 {
			col.Extensions = []string{".md", ".mdx"}
		}
		if len(col.Schema.Fields) == 0 {
			switch col.Preset {
			case "blog":
				col.Schema = BlogSchema()
			case "notes":
				col.Schema = NotesSchema()
			}
		}
	}
	if c.WordsPerMinute <= 0 {
		c.WordsPerMinute = DefaultWordsPerMinute
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.GOMAXPROCS(0)
	}
	if c.OpenGraphEndpoint == "" {
		c.OpenGraphEndpoint = "/api/og"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = time.Minute
	}
	if c.StaticDir == "" {
		c.StaticDir = c.AssetsDir
	}
	if c.RateLimit == 0 {
		c.RateLimit = 120
	}
}

// Validate reports an ErrConfig for definitions the pipeline cannot run with.
func (c Config) Validate() error {
	errs := validation.Errors{}
	if err := validation.Validate(c.ContentDir, validation.Required); err != nil {
		errs["content_dir"] = err
	}
	if c.Site.URL != "" && !strings.HasPrefix(c.Site.URL, "http://") && !strings.HasPrefix(c.Site.URL, "https://") {
		errs["site.url"] = validation.NewError("config.site.url", "must be an absolute http(s) URL")
	}
	if c.Concurrency < 0 {
		errs["concurrency"] = validation.NewError("config.concurrency", "must be zero or positive")
	}
	if len(c.Collections) == 0 {
		errs["collections"] = validation.NewError("config.collections.required", "at least one collection is required")
	}
	seen := make(map[string]struct{}, len(c.Collections))
	for i, col := range c.Collections {
		key := fmt.Sprintf("collections[%d]", i)
		if err := validation.ValidateStruct(&col,
			validation.Field(&col.Name, validation.Required),
			validation.Field(&col.Pattern, validation.Required),
			validation.Field(&col.Preset, validation.In("", "blog", "notes")),
		); err != nil {
			errs[key] = err
			continue
		}
		if _, dup := seen[col.Name]; dup {
			errs[key] = validation.NewError("config.collections.duplicate", fmt.Sprintf("collection %q is declared more than once", col.Name))
			continue
		}
		seen[col.Name] = struct{}{}
		if _, err := compilePattern(col.Pattern); err != nil {
			errs[key] = validation.NewError("config.collections.pattern", err.Error())
			continue
		}
		if err := col.Schema.Validate(); err != nil {
			errs[key+".schema"] = err
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrConfig, errs)
	}
	return nil
}

// LoadConfig reads a YAML config file, applies FOLIO_* environment
// overrides and defaults. A missing file is not an error when path is
// empty.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("%w: read config %s: %v", ErrConfig, path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: parse config %s: %v", ErrConfig, path, err)
		}
	}
	cfg.Site.URL = EnvOr("FOLIO_SITE_URL", cfg.Site.URL)
	cfg.Site.Addr = EnvOr("FOLIO_ADDR", cfg.Site.Addr)
	cfg.ContentDir = EnvOr("FOLIO_CONTENT_DIR", cfg.ContentDir)
	cfg.AssetsDir = EnvOr("FOLIO_ASSETS_DIR", cfg.AssetsDir)
	cfg.CachePath = EnvOr("FOLIO_CACHE_PATH", cfg.CachePath)
	cfg.setDefaults()
	return cfg, nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures a Build.
type Option func(*builder)

// WithLogger sets the logger used for build progress.
func WithLogger(l Logger) Option {
	return func(b *builder) {
		b.logger = l
	}
}

// WithPlaceholderCache reuses image placeholders across builds.
func WithPlaceholderCache(c PlaceholderCache) Option {
	return func(b *builder) {
		b.cache = c
	}
}
