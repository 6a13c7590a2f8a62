package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/multierr"

	rep2html "github.com/alnah/go-rep2html"
	"github.com/alnah/go-rep2html/internal/fileutil"
	"github.com/alnah/go-rep2html/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o755 // rwxr-xr-x: pages are published
	pagePermissions = 0o664 // rw-rw-r--: group-writable like the published tree
)

// ErrWriteOutput indicates a page could not be written.
var ErrWriteOutput = errors.New("failed to write page")

// DocConverter is the conversion service used by the CLI.
type DocConverter interface {
	ConvertFile(ctx context.Context, path string) (*rep2html.Result, error)
}

// Compile-time interface implementation check.
var _ DocConverter = (*rep2html.Converter)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath   string
	OutputPath  string
	ContentType string
	Err         error
	Skipped     bool // Err means the input is not a convertible document
	Duration    time.Duration
}

// ResultSummary counts conversion outcomes.
type ResultSummary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// batchError reports failed conversions. It unwraps to every cause so
// exit codes follow the underlying errors.
type batchError struct {
	failed int
	err    error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchError) Unwrap() error {
	return e.err
}

// convertBatch converts files with up to workers goroutines sharing conv.
// Results keep the order of files.
func convertBatch(ctx context.Context, conv DocConverter, files []FileToConvert, workers int) []ConversionResult {
	if len(files) == 0 {
		return nil
	}
	workers = max(min(workers, len(files)), 1)

	results := make([]ConversionResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile converts one source and writes its page atomically.
func convertFile(ctx context.Context, conv DocConverter, f FileToConvert) (result ConversionResult) {
	start := time.Now()
	result = ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	defer func() { result.Duration = time.Since(start) }()

	res, err := conv.ConvertFile(ctx, f.InputPath)
	if err != nil {
		result.Err = err
		result.Skipped = rep2html.IsSkippable(err)
		return result
	}
	result.ContentType = res.ContentType

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		return result
	}
	if err := fileutil.WriteFileAtomic(f.OutputPath, res.HTML, pagePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		return result
	}
	return result
}

// countResults tallies conversion outcomes.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err == nil:
			summary.Succeeded++
		case r.Skipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	}
	return summary
}

// batchErr aggregates failed conversions, or returns nil when none failed.
func batchErr(results []ConversionResult) error {
	var errs error
	failed := 0
	for _, r := range results {
		if r.Err != nil && !r.Skipped {
			errs = multierr.Append(errs, r.Err)
			failed++
		}
	}
	if errs == nil {
		return nil
	}
	return &batchError{failed: failed, err: errs}
}

// printResults writes one line per document and, for batches, a summary.
// Failures and skips always go to stderr; quiet hides the rest.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)

	for _, r := range results {
		switch {
		case r.Skipped:
			fmt.Fprintf(env.Stderr, "SKIPPED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
		case r.Err != nil:
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
		case quiet:
		case verbose:
			fmt.Fprintf(env.Stdout, "%s (%s) -> %s (%v)\n", r.InputPath, r.ContentType, r.OutputPath, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d skipped, %d failed\n", summary.Succeeded, summary.Skipped, summary.Failed)
	}
	return summary
}

// hintFor returns an actionable suffix for common conversion errors.
func hintFor(err error) string {
	switch {
	case errors.Is(err, rep2html.ErrNotDocument):
		return hints.ForNotDocument()
	case errors.Is(err, rep2html.ErrMissingSource):
		return hints.ForMissingSource()
	case errors.Is(err, rep2html.ErrRendererUnavailable), errors.Is(err, rep2html.ErrUnknownContentType):
		return hints.ForRenderer("this content type")
	}
	return ""
}
