// Package folio turns a tree of Markdown files with front matter into a
// typed, queryable collection of documents and serves it as a website.
//
// Build runs the pipeline once: discovery, front-matter validation against a
// declarative Schema, field derivation (slug, reading time, image
// placeholder, OpenGraph image, table of contents) and assembly into a
// read-only Collection. App wraps a CollectionCache in an Echo server with
// HTML pages, RSS, a sitemap and a small JSON API.
package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/quotes"
)

// App is the folio site server. It wires together the store, collection
// cache, quote picker, handlers and middleware.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Cache  *CollectionCache
	Quotes *quotes.Picker

	limiter      *RateLimiter
	buildOpts    []Option
	customRoutes []func(*App)
	now          func() time.Time
}

// AppOption configures an App.
type AppOption func(*App)

// WithRoutes registers extra routes after the built-in ones.
func WithRoutes(fn func(*App)) AppOption {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithBuildOptions passes options to every collection rebuild.
func WithBuildOptions(opts ...Option) AppOption {
	return func(a *App) {
		a.buildOpts = append(a.buildOpts, opts...)
	}
}

// New creates an App. Call Init (or Start) before serving.
func New(cfg Config, opts ...AppOption) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		now:    time.Now,
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init opens the store, prepares the collection cache and quote picker, and
// registers middleware and routes.
func (a *App) Init() error {
	if err := a.Config.Validate(); err != nil {
		return err
	}

	if a.Config.CachePath != "" {
		store, err := NewStore(a.Config.CachePath)
		if err != nil {
			return fmt.Errorf("folio: init store: %w", err)
		}
		a.Store = store
	}

	list := quotes.Default
	if a.Config.QuotesPath != "" {
		loaded, err := quotes.Load(a.Config.QuotesPath)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrConfig, err)
		}
		list = loaded
	}
	var settings quotes.Settings
	if a.Store != nil {
		settings = a.Store
	}
	a.Quotes = quotes.NewPicker(list, settings)

	opts := []Option{WithLogger(a.Echo.Logger)}
	if a.Store != nil {
		opts = append(opts, WithPlaceholderCache(a.Store))
	}
	opts = append(opts, a.buildOpts...)
	cfg := a.Config
	a.Cache = NewCollectionCache(func(ctx context.Context) (*Collection, error) {
		return Build(ctx, cfg, opts...)
	}, a.Config.CacheTTL)

	if a.Config.RateLimit > 0 {
		a.limiter = NewRateLimiter(a.Config.RateLimit, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}
	return a.Serve(ctx)
}

// Serve builds the collection once so a broken content tree fails at
// startup, then listens on Site.Addr until ctx is cancelled. Init must have
// been called.
func (a *App) Serve(ctx context.Context) error {
	if _, err := a.Cache.Get(ctx); err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			a.Echo.Logger.Errorf("shutdown: %v", err)
		}
	}()

	a.Echo.Logger.Infof("listening on %s", a.Config.Site.Addr)
	if err := a.Echo.Start(a.Config.Site.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static(StaticPrefix, a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/rss.xml", a.handleFeed)

	api := e.Group("/api")
	if a.limiter != nil {
		api.Use(a.limiter.Middleware)
	}
	api.GET("/collections/:collection", a.handleAPICollection)
	api.GET("/quote", a.handleQuote)
	api.GET("/og", a.handleOpenGraph)

	e.GET("/", a.handleHome)
	e.GET("/:collection/*", a.handleCollectionPath)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
