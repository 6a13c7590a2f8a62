package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// assetFlags holds page template and stylesheet flags.
type assetFlags struct {
	style          string // name or path
	template       string // name or path
	assetPath      string // directory overriding embedded assets
	stylesheetHref string
	inline         bool
}

// linkFlags holds link pattern overrides.
type linkFlags struct {
	rfcURL    string
	docURL    string
	sourceURL string
	trust     []string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	input      string
	output     string
	workers    int
	install    string
	browse     bool
	dateFormat string
	assets     assetFlags
	links      linkFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show each conversion and debug logs")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "stylesheet name or file path")
	fs.StringVar(&f.template, "template", "", "page template name or file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.StringVar(&f.stylesheetHref, "stylesheet-href", "", "stylesheet URL linked from pages")
	fs.BoolVar(&f.inline, "inline-style", false, "embed the stylesheet in each page")
}

// addLinkFlags adds link pattern flags to a FlagSet.
func addLinkFlags(fs *flag.FlagSet, f *linkFlags) {
	fs.StringVar(&f.rfcURL, "rfc-url", "", "RFC link pattern with one %d")
	fs.StringVar(&f.docURL, "doc-url", "", "document link pattern with one %d")
	fs.StringVar(&f.sourceURL, "source-url", "", "source link pattern with one %d")
	fs.StringSliceVar(&f.trust, "trust", nil, "address published as a mailto link (repeatable)")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, env *Environment) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &convertFlags{}

	fs.StringVarP(&f.input, "input", "d", "", "directory holding the documents")
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: next to each source)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.install, "install", "i", "", "copy pages, sources and stylesheet into this directory")
	fs.BoolVarP(&f.browse, "browse", "b", false, "open converted pages in the browser")
	fs.StringVar(&f.dateFormat, "date-format", "", "format for defaulted revision dates, e.g. DD-MMM-YYYY")

	addCommonFlags(fs, &f.common)
	addAssetFlags(fs, &f.assets)
	addLinkFlags(fs, &f.links)

	fs.Usage = func() { printConvertUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return f, fs.Args(), nil
}
