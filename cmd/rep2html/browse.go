package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/alnah/go-rep2html/internal/config"
	"github.com/alnah/go-rep2html/internal/fileutil"
	"github.com/alnah/go-rep2html/internal/hints"
)

// ErrBrowserUnavailable indicates no browser could be found for --browse.
var ErrBrowserUnavailable = errors.New("no browser available")

// indexSource is the index document opened when browsing without arguments.
const indexSource = "rep-0000.rst"

// browseTargets returns the pages to open. Named documents open their own
// pages; a full run opens the index. Installed copies win over the
// working pages.
func browseTargets(positional []string, files []FileToConvert, results []ConversionResult, cfg *config.Config) []string {
	installed := func(page string) string {
		if cfg.Install.Dir == "" {
			return page
		}
		return filepath.Join(cfg.Install.Dir, filepath.Base(page))
	}

	if len(positional) == 0 {
		inputDir := cfg.Input.DefaultDir
		if inputDir == "" {
			inputDir = "."
		}
		return []string{installed(resolveOutputPath(filepath.Join(inputDir, indexSource), cfg.Output.DefaultDir))}
	}

	var targets []string
	for i, r := range results {
		if r.Err == nil {
			targets = append(targets, installed(files[i].OutputPath))
		}
	}
	return targets
}

// browsePages opens each page in the browser.
func browsePages(pages []string, env *Environment) error {
	if len(pages) == 0 {
		return nil
	}
	if _, ok := env.LookBrowser(); !ok {
		return fmt.Errorf("%w%s", ErrBrowserUnavailable, hints.ForBrowser())
	}
	for _, page := range pages {
		if !fileutil.FileExists(page) {
			return fmt.Errorf("browsing %s: %w", page, fs.ErrNotExist)
		}
		u, err := fileURL(page)
		if err != nil {
			return fmt.Errorf("browsing %s: %w", page, err)
		}
		env.OpenBrowser(u)
	}
	return nil
}

// fileURL returns the file: URL of path.
func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // Windows drive letter
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), nil
}
