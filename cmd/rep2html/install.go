package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/alnah/go-rep2html/internal/fileutil"
)

// ErrInstall indicates a page, source or stylesheet could not be installed.
var ErrInstall = errors.New("install failed")

// installedStylesheet is where pages look for the stylesheet by default.
const installedStylesheet = "css/rep.css"

// installPages copies every converted page and its source into dir, then
// writes the stylesheet to dir/css/rep.css. It returns the installed page
// paths. Failures are collected so one bad file does not stop the rest.
func installPages(dir string, results []ConversionResult, style string) ([]string, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInstall, err)
	}

	var (
		installed []string
		errs      error
	)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		page := filepath.Join(dir, filepath.Base(r.OutputPath))
		if err := fileutil.CopyFile(r.OutputPath, page, pagePermissions); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: %v", ErrInstall, r.OutputPath, err))
			continue
		}
		source := filepath.Join(dir, filepath.Base(r.InputPath))
		if err := fileutil.CopyFile(r.InputPath, source, pagePermissions); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s: %v", ErrInstall, r.InputPath, err))
			continue
		}
		installed = append(installed, page)
	}

	css := filepath.Join(dir, filepath.FromSlash(installedStylesheet))
	if err := os.MkdirAll(filepath.Dir(css), dirPermissions); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: %v", ErrInstall, err))
	} else if err := fileutil.WriteFileAtomic(css, []byte(style), pagePermissions); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: %s: %v", ErrInstall, css, err))
	}
	return installed, errs
}
