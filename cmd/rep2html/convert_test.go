package main

// Notes:
// - runConvert end to end is covered through runMain in main_test.go.
// - mergeFlags and converterOptions: we check precedence and that the
//   resulting options build a working converter.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	rep2html "github.com/alnah/go-rep2html"
	"github.com/alnah/go-rep2html/internal/config"
	"github.com/alnah/go-rep2html/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	flags, positional, err := parseConvertFlags([]string{
		"-d", "reps", "-o", "site", "-w", "3", "-b", "-q",
		"--trust", "a@example.com", "--trust", "b@example.com",
		"--doc-url", "rep-%04d.htm", "--inline-style",
		"5", "rep-0007.txt",
	}, env.Environment)
	if err != nil {
		t.Fatalf("parseConvertFlags() error = %v", err)
	}

	if flags.input != "reps" || flags.output != "site" || flags.workers != 3 {
		t.Errorf("input/output/workers = %q/%q/%d", flags.input, flags.output, flags.workers)
	}
	if !flags.browse || !flags.common.quiet || !flags.assets.inline {
		t.Errorf("browse/quiet/inline = %v/%v/%v", flags.browse, flags.common.quiet, flags.assets.inline)
	}
	if !slices.Equal(flags.links.trust, []string{"a@example.com", "b@example.com"}) {
		t.Errorf("trust = %v", flags.links.trust)
	}
	if flags.links.docURL != "rep-%04d.htm" {
		t.Errorf("docURL = %q", flags.links.docURL)
	}
	if !slices.Equal(positional, []string{"5", "rep-0007.txt"}) {
		t.Errorf("positional = %v", positional)
	}
}

func TestParseConvertFlags_Errors(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	if _, _, err := parseConvertFlags([]string{"-w", "many"}, env.Environment); !errors.Is(err, ErrUsage) {
		t.Errorf("bad value: error = %v, want ErrUsage", err)
	}
	if _, _, err := parseConvertFlags([]string{"-h"}, env.Environment); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("help: error = %v, want flag.ErrHelp", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidateFlags - Command line values use config rules
// ---------------------------------------------------------------------------

func TestValidateFlags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		flags   convertFlags
		wantErr bool
	}{
		{"empty", convertFlags{}, false},
		{"good patterns", convertFlags{links: linkFlags{rfcURL: "rfc%d.txt", docURL: "rep-%04d.html"}}, false},
		{"pattern without verb", convertFlags{links: linkFlags{sourceURL: "src.rst"}}, true},
		{"two verbs", convertFlags{links: linkFlags{docURL: "%d/%d"}}, true},
		{"trusted address", convertFlags{links: linkFlags{trust: []string{"ros@example.org"}}}, false},
		{"trusted non-address", convertFlags{links: linkFlags{trust: []string{"ros"}}}, true},
		{"date format", convertFlags{dateFormat: "DD-MMM-YYYY"}, false},
		{"unclosed bracket", convertFlags{dateFormat: "[DD"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := validateFlags(&tt.flags)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUsage) {
				t.Errorf("error = %v, want ErrUsage", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - Command line over config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags win", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Input.DefaultDir = "from-file"
		cfg.Workers = 2

		mergeFlags(&convertFlags{
			input:      "reps",
			workers:    6,
			install:    "site",
			dateFormat: "YYYY-MM-DD",
			assets:     assetFlags{style: "plain", inline: true},
			links:      linkFlags{docURL: "rep-%04d.htm"},
			common:     commonFlags{verbose: true},
		}, cfg)

		if cfg.Input.DefaultDir != "reps" || cfg.Workers != 6 || cfg.Install.Dir != "site" {
			t.Errorf("input/workers/install = %q/%d/%q", cfg.Input.DefaultDir, cfg.Workers, cfg.Install.Dir)
		}
		if cfg.Header.DateFormat != "YYYY-MM-DD" || cfg.Assets.Style != "plain" || !cfg.Assets.Inline {
			t.Errorf("header/assets = %+v/%+v", cfg.Header, cfg.Assets)
		}
		if cfg.Links.DocURL != "rep-%04d.htm" {
			t.Errorf("DocURL = %q", cfg.Links.DocURL)
		}
		if cfg.Log.Level != config.LogDebug {
			t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.Output.DefaultDir = "out"
		cfg.Workers = 2

		mergeFlags(&convertFlags{}, cfg)

		if cfg.Output.DefaultDir != "out" || cfg.Workers != 2 || cfg.Log.Level != config.LogNormal {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("quiet wins over verbose", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		mergeFlags(&convertFlags{common: commonFlags{quiet: true, verbose: true}}, cfg)
		if cfg.Log.Level != config.LogQuiet {
			t.Errorf("Log.Level = %q, want quiet", cfg.Log.Level)
		}
	})

	t.Run("trust extends the built-in list", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		mergeFlags(&convertFlags{links: linkFlags{trust: []string{"me@example.com"}}}, cfg)

		want := append(slices.Clone(pipeline.DefaultTrustList), "me@example.com")
		if !slices.Equal(cfg.TrustList, want) {
			t.Errorf("TrustList = %v, want %v", cfg.TrustList, want)
		}
		if len(pipeline.DefaultTrustList) != 2 {
			t.Errorf("DefaultTrustList modified: %v", pipeline.DefaultTrustList)
		}
	})

	t.Run("trust extends the configured list", func(t *testing.T) {
		t.Parallel()
		cfg := config.DefaultConfig()
		cfg.TrustList = []string{"team@example.com"}
		mergeFlags(&convertFlags{links: linkFlags{trust: []string{"me@example.com"}}}, cfg)

		if !slices.Equal(cfg.TrustList, []string{"team@example.com", "me@example.com"}) {
			t.Errorf("TrustList = %v", cfg.TrustList)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConverterOptions - Config to a working converter
// ---------------------------------------------------------------------------

func TestConverterOptions(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Links.DocURL = "rep-%04d.htm"
	cfg.TrustList = []string{}
	cfg.Assets.Inline = true

	conv, err := rep2html.NewConverter(converterOptions(cfg, zap.NewNop())...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}

	res, err := conv.Convert(context.Background(), rep2html.Input{
		Path:  "rep-0005.txt",
		Lines: strings.Split(strings.TrimSuffix(testDoc, "\n"), "\n"),
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	page := string(res.HTML)
	assertContains(t, "page", page, `<a href="rep-0003.htm">3</a>`, "<style>")
	if strings.Contains(page, `rel="stylesheet"`) {
		t.Error("inline style should not link a stylesheet")
	}
}
