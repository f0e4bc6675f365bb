// Command fortune prints fortune cookies from a directory of strfile
// indexed categories.
//
//	fortune [-config file] [-d dir] [-f format] [-c category [-n number]]
//	fortune -l
//	fortune -i [-c category]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/meigma/fortune"
	"github.com/meigma/fortune/internal/config"
	"github.com/meigma/fortune/render"
)

type options struct {
	configPath string
	directory  string
	format     string
	logLevel   string
	category   string
	number     int
	list       bool
	info       bool
	strict     bool
	decompress bool
}

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	switch {
	case err == nil:
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "fortune: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("fortune", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file")
	fs.StringVar(&opts.directory, "d", "", "directory holding the category files (overrides config)")
	fs.StringVar(&opts.format, "f", "", "output format: text, xml, html, json or a content type (overrides config)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	fs.StringVar(&opts.category, "c", "", "category to draw from")
	fs.IntVar(&opts.number, "n", 0, "cookie number within the category (1-based, requires -c)")
	fs.BoolVar(&opts.list, "l", false, "list the loaded categories")
	fs.BoolVar(&opts.info, "i", false, "show category details")
	fs.BoolVar(&opts.strict, "strict", false, "reject indexes whose offsets decrease")
	fs.BoolVar(&opts.decompress, "z", false, "also serve zstd-compressed .zst category files")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return options{}, errUsage
	}
	if opts.number != 0 && opts.category == "" {
		fmt.Fprintln(stderr, "-n requires -c")
		return options{}, errUsage
	}
	return opts, nil
}

// settings merges the config file and environment with the flags.
func settings(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.directory != "" {
		cfg.Directory = opts.directory
	}
	if opts.format != "" {
		cfg.Format = opts.format
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	cfg.StrictOffsets = cfg.StrictOffsets || opts.strict
	cfg.Decompress = cfg.Decompress || opts.decompress
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := settings(opts)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	format, err := render.Parse(cfg.Format)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	store, err := fortune.Load(ctx, cfg.Provider(), cfg.Directory, cfg.StoreOptions(logger)...)
	if err != nil {
		return err
	}

	switch {
	case opts.list:
		return writeCategories(stdout, store.Categories(), format)
	case opts.info && opts.category != "":
		c, err := store.Category(opts.category)
		if err != nil {
			return err
		}
		return writeCategories(stdout, []fortune.Category{c}, format)
	case opts.info:
		return writeInfo(stdout, store, format)
	}

	cookie, err := draw(store, opts)
	if err != nil {
		return err
	}
	content, err := format.Encode(cookie)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", content)
	return err
}

func draw(store *fortune.Store, opts options) (fortune.Fortune, error) {
	switch {
	case opts.number != 0:
		return store.Fortune(opts.category, opts.number)
	case opts.category != "":
		return store.RandomFrom(opts.category)
	default:
		return store.Random()
	}
}

func writeCategories(w io.Writer, categories []fortune.Category, format render.Format) error {
	if format == render.JSON {
		return writeJSON(w, categories)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tRECORDS\tDIGEST")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", c.Name, c.TotalRecords, c.Digest)
	}
	return tw.Flush()
}

func writeInfo(w io.Writer, store *fortune.Store, format render.Format) error {
	categories := store.Categories()
	var total uint64
	for _, c := range categories {
		total += uint64(c.TotalRecords)
	}
	if format == render.JSON {
		return writeJSON(w, struct {
			Directory    string             `json:"directory"`
			Digest       string             `json:"digest"`
			TotalRecords uint64             `json:"totalRecords"`
			Categories   []fortune.Category `json:"categories"`
		}{store.Dir(), store.Digest().String(), total, categories})
	}
	fmt.Fprintf(w, "directory=%s\ndigest=%s\ncategories=%d\nrecords=%d\n",
		store.Dir(), store.Digest(), len(categories), total)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
