package main

import (
	"errors"
	"os"

	rep2html "github.com/alnah/go-rep2html"
	"github.com/alnah/go-rep2html/internal/assets"
	"github.com/alnah/go-rep2html/internal/config"
	"github.com/alnah/go-rep2html/internal/dateutil"
)

// Exit codes for the rep2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // All documents converted or skipped
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, arguments, or config
	ExitIO       = 3 // Unreadable input, unwritable output, failed install
	ExitRenderer = 4 // Template, renderer, or browser unavailable
)

// exitCodeFor returns the exit code for an error. It uses errors.Is, so
// wrapped and aggregated errors map to the code of their causes.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, rep2html.ErrTemplateUnavailable) ||
		errors.Is(err, rep2html.ErrRendererUnavailable) ||
		errors.Is(err, rep2html.ErrUnknownContentType) ||
		errors.Is(err, ErrBrowserUnavailable) {
		return ExitRenderer
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrInstall) {
		return ExitIO
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, rep2html.ErrInvalidAssetPath) ||
		errors.Is(err, rep2html.ErrInvalidDateFormat) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) {
		return ExitUsage
	}

	return ExitGeneral
}
