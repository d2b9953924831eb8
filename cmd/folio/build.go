package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/eringen/folio"
)

const defaultConfigPath = "folio.yaml"

// commonFlags are shared by build and serve.
type commonFlags struct {
	config  string
	lenient bool
	level   string
}

func (f *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.config, "config", "", "YAML config file (default folio.yaml when present)")
	fs.BoolVar(&f.lenient, "lenient", false, "skip invalid files instead of failing")
	fs.StringVar(&f.level, "log", "info", "log level: debug, info, warn, error or off")
}

func (f *commonFlags) load() (folio.Config, error) {
	path := f.config
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}
	cfg, err := folio.LoadConfig(path)
	if err != nil {
		return folio.Config{}, err
	}
	if f.lenient {
		cfg.Lenient = true
	}
	return cfg, nil
}

// exportedDocument carries the body, which the library keeps out of JSON.
type exportedDocument struct {
	folio.Document
	Body folio.Body `json:"body"`
}

type export struct {
	Documents []exportedDocument `json:"documents"`
	Warnings  []string           `json:"warnings,omitempty"`
}

func runBuild(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var common commonFlags
	common.register(fs)
	out := fs.String("out", "", "write the collection as JSON to this file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := common.load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	logger := folio.NewLogger("folio", common.level)
	logger.SetOutput(stderr)
	opts := []folio.Option{folio.WithLogger(logger)}
	var store *folio.Store
	if cfg.CachePath != "" {
		store, err = folio.NewStore(cfg.CachePath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: open cache: %v\n", err)
			return 1
		}
		defer store.Close()
		opts = append(opts, folio.WithPlaceholderCache(store))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	coll, err := folio.Build(ctx, cfg, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, folio.ErrConfig) {
			return 2
		}
		return 1
	}
	for _, w := range coll.Warnings() {
		fmt.Fprintf(stderr, "warning: %v\n", w)
	}

	writeSummary(stdout, cfg, coll)
	if store != nil {
		n, err := store.CountPlaceholders()
		if err != nil {
			fmt.Fprintf(stderr, "Error: count placeholders: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "%d image placeholders cached in %s\n", n, cfg.CachePath)
	}

	if *out != "" {
		if err := writeExport(*out, coll); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "wrote %s\n", *out)
	}
	return 0
}

func writeExport(path string, coll *folio.Collection) error {
	var e export
	for _, d := range coll.All() {
		e.Documents = append(e.Documents, exportedDocument{Document: d, Body: d.Body})
	}
	for _, w := range coll.Warnings() {
		e.Warnings = append(e.Warnings, w.Error())
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
