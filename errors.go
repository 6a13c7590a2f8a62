package rep2html

import (
	"errors"
	"fmt"

	"github.com/alnah/go-rep2html/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// ErrNotDocument indicates the input has no recognizable header block.
	ErrNotDocument = pipeline.ErrNotDocument

	// ErrMalformedID indicates the identifier field is not a number.
	ErrMalformedID = pipeline.ErrMalformedID

	// ErrMissingSource indicates the input file does not exist.
	ErrMissingSource = errors.New("source file not found")

	// ErrTemplateUnavailable indicates the page template or stylesheet could
	// not be loaded, parsed, or executed.
	ErrTemplateUnavailable = errors.New("page template unavailable")

	// ErrRendererUnavailable indicates a known content type without a body renderer.
	ErrRendererUnavailable = errors.New("renderer unavailable for content type")

	// ErrUnknownContentType indicates a content type the converter does not know.
	ErrUnknownContentType = errors.New("unknown content type")

	// ErrInvalidAssetPath indicates the custom asset directory is unusable.
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// ErrInvalidDateFormat indicates a revision date format that does not parse.
	ErrInvalidDateFormat = errors.New("invalid date format")
)

// ConversionError reports a failed conversion with the file and, for header
// problems, the field involved.
type ConversionError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConversionError) Error() string {
	prefix := e.Path
	if prefix == "" {
		prefix = "<input>"
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field %s: %v", prefix, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// IsSkippable reports whether err means "skip this input": not a document,
// a malformed identifier, or a missing source file. A batch keeps going
// after such errors.
func IsSkippable(err error) bool {
	return errors.Is(err, ErrNotDocument) ||
		errors.Is(err, ErrMalformedID) ||
		errors.Is(err, ErrMissingSource)
}

// wrapHeaderError attaches the path and the offending field of a header error.
func wrapHeaderError(path string, err error) error {
	ce := &ConversionError{Path: path, Err: err}
	var he *pipeline.HeaderError
	if errors.As(err, &he) {
		ce.Field = he.Field
		ce.Err = he.Err
		if he.Value != "" {
			ce.Err = fmt.Errorf("%w: %q", he.Err, he.Value)
		}
	}
	return ce
}
