package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/maruel/natural"

	"github.com/alnah/go-rep2html/internal/fileutil"
)

// Sentinel errors for argument resolution and discovery.
var (
	ErrNoInput            = errors.New("no documents found")
	ErrInvalidArgument    = errors.New("argument is neither a file nor a document number")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// sourcePatterns are the file names a directory scan picks up, in
// preference order when two sources share a stem.
var sourcePatterns = []string{"rep-*.rst", "rep-*.txt"}

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// resolveArgs maps command line arguments to source paths. An existing file
// is used as is; a number n names rep-%04d.rst in inputDir. The resolved
// file need not exist: a missing one is reported and skipped later.
func resolveArgs(args []string, inputDir string) ([]string, error) {
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		if fileutil.FileExists(arg) {
			paths = append(paths, arg)
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 {
			if fileutil.IsFilePath(arg) || filepath.Ext(arg) != "" {
				// Looks like a path; let conversion report it missing.
				paths = append(paths, arg)
				continue
			}
			return nil, fmt.Errorf("%w: %q", ErrInvalidArgument, arg)
		}
		paths = append(paths, filepath.Join(inputDir, fmt.Sprintf("rep-%04d.rst", n)))
	}
	return paths, nil
}

// discoverSources lists every document source in dir in natural order, so
// rep-0010 follows rep-0009. When a stem exists as both .rst and .txt only
// the .rst is kept, since both would render to the same page.
func discoverSources(dir string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range sourcePatterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", dir, err)
		}
		for _, m := range matches {
			if !fileutil.FileExists(m) {
				continue
			}
			stem := strings.TrimSuffix(m, filepath.Ext(m))
			if seen[stem] {
				continue
			}
			seen[stem] = true
			paths = append(paths, m)
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s (looked for %s)", ErrNoInput, dir, strings.Join(sourcePatterns, ", "))
	}
	slices.SortFunc(paths, func(a, b string) int {
		switch {
		case natural.Less(filepath.Base(a), filepath.Base(b)):
			return -1
		case natural.Less(filepath.Base(b), filepath.Base(a)):
			return 1
		}
		return 0
	})
	return paths, nil
}

// resolveOutputPath returns the page path for a source: the source with an
// .html extension, or that file name inside outputDir.
func resolveOutputPath(inputPath, outputDir string) string {
	page := fileutil.ReplaceExt(inputPath, ".html")
	if outputDir == "" {
		return page
	}
	return filepath.Join(outputDir, filepath.Base(page))
}

// planFiles pairs each source with its output path.
func planFiles(sources []string, outputDir string) []FileToConvert {
	files := make([]FileToConvert, len(sources))
	for i, src := range sources {
		files[i] = FileToConvert{InputPath: src, OutputPath: resolveOutputPath(src, outputDir)}
	}
	return files
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n, maxWorkers int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}
