package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	rep2html "github.com/alnah/go-rep2html"
	"github.com/alnah/go-rep2html/internal/config"
	"github.com/alnah/go-rep2html/internal/hints"
	"github.com/alnah/go-rep2html/internal/logging"
	"github.com/alnah/go-rep2html/internal/pipeline"
)

// ErrUsage indicates invalid flags or arguments.
var ErrUsage = errors.New("invalid usage")

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates argument resolution, batch conversion, install
// and browsing.
func runConvert(ctx context.Context, positional []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers, config.MaxWorkers); err != nil {
		return err
	}
	if err := validateFlags(flags); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)

	logger := logging.New(cfg.Log.Level, env.Stderr)
	defer func() { _ = logger.Sync() }()

	conv, err := rep2html.NewConverter(converterOptions(cfg, logger)...)
	if err != nil {
		if errors.Is(err, pipeline.ErrTemplateSlots) {
			return fmt.Errorf("%w%s", err, hints.ForTemplate(pipeline.RequiredSlots))
		}
		return err
	}

	inputDir := cfg.Input.DefaultDir
	if inputDir == "" {
		inputDir = "."
	}
	var sources []string
	if len(positional) > 0 {
		sources, err = resolveArgs(positional, inputDir)
	} else {
		sources, err = discoverSources(inputDir)
	}
	if err != nil {
		return err
	}

	files := planFiles(sources, cfg.Output.DefaultDir)
	workers := rep2html.ResolveWorkers(cfg.Workers)
	logger.Debug("converting", zap.Int("documents", len(files)), zap.Int("workers", workers))

	results := convertBatch(ctx, conv, files, workers)
	printResults(results, cfg.Log.Level == config.LogQuiet, cfg.Log.Level == config.LogDebug, env)
	errs := batchErr(results)

	if cfg.Install.Dir != "" {
		installed, err := installPages(cfg.Install.Dir, results, conv.Style())
		errs = multierr.Append(errs, err)
		if cfg.Log.Level != config.LogQuiet && len(installed) > 0 {
			fmt.Fprintf(env.Stdout, "Installed %d page(s) in %s\n", len(installed), cfg.Install.Dir)
		}
	}

	if flags.browse {
		targets := browseTargets(positional, files, results, cfg)
		errs = multierr.Append(errs, browsePages(targets, env))
	}
	return errs
}

// validateFlags checks link patterns, trusted addresses and the date
// format given on the command line with the same rules as the config file.
func validateFlags(flags *convertFlags) error {
	probe := config.Config{
		Links: config.LinksConfig{
			RFCURL:    flags.links.rfcURL,
			DocURL:    flags.links.docURL,
			SourceURL: flags.links.sourceURL,
		},
		TrustList: flags.links.trust,
		Header:    config.HeaderConfig{DateFormat: flags.dateFormat},
	}
	if err := probe.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// mergeFlags copies explicitly set flags over config values (CLI wins).
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.input != "" {
		cfg.Input.DefaultDir = flags.input
	}
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.install != "" {
		cfg.Install.Dir = flags.install
	}
	if flags.dateFormat != "" {
		cfg.Header.DateFormat = flags.dateFormat
	}

	if flags.assets.style != "" {
		cfg.Assets.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Assets.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}
	if flags.assets.stylesheetHref != "" {
		cfg.Assets.StylesheetHref = flags.assets.stylesheetHref
	}
	if flags.assets.inline {
		cfg.Assets.Inline = true
	}

	if flags.links.rfcURL != "" {
		cfg.Links.RFCURL = flags.links.rfcURL
	}
	if flags.links.docURL != "" {
		cfg.Links.DocURL = flags.links.docURL
	}
	if flags.links.sourceURL != "" {
		cfg.Links.SourceURL = flags.links.sourceURL
	}
	if len(flags.links.trust) > 0 {
		if cfg.TrustList == nil {
			cfg.TrustList = slices.Clone(pipeline.DefaultTrustList)
		}
		cfg.TrustList = append(cfg.TrustList, flags.links.trust...)
	}

	switch {
	case flags.common.quiet:
		cfg.Log.Level = config.LogQuiet
	case flags.common.verbose:
		cfg.Log.Level = config.LogDebug
	}
}

// converterOptions translates configuration into converter options.
func converterOptions(cfg *config.Config, logger *zap.Logger) []rep2html.Option {
	opts := []rep2html.Option{
		rep2html.WithLinks(rep2html.Links{
			RFCURL:       cfg.Links.RFCURL,
			DocURL:       cfg.Links.DocURL,
			SourceURL:    cfg.Links.SourceURL,
			TypeRegistry: cfg.Links.TypeRegistry,
		}),
		rep2html.WithAssetPath(cfg.Assets.BasePath),
		rep2html.WithTemplate(cfg.Assets.Template),
		rep2html.WithStyle(cfg.Assets.Style),
		rep2html.WithInlineStyle(cfg.Assets.Inline),
		rep2html.WithDateFormat(cfg.Header.DateFormat),
		rep2html.WithLogger(logger),
		rep2html.WithVersion(Version),
	}
	if cfg.TrustList != nil {
		opts = append(opts, rep2html.WithTrustList(cfg.TrustList...))
	}
	if cfg.Assets.StylesheetHref != "" {
		opts = append(opts, rep2html.WithStylesheetHref(cfg.Assets.StylesheetHref))
	}
	return opts
}
