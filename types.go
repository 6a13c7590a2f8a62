package rep2html

import (
	"time"

	"github.com/alnah/go-rep2html/internal/pipeline"
)

// Content types recognized in the Content-Type header field.
const (
	ContentTypePlain    = pipeline.ContentTypePlain
	ContentTypeMarkdown = pipeline.ContentTypeMarkdown
	ContentTypeRST      = pipeline.ContentTypeRST
)

// KnownContentTypes lists every content type the converter recognizes,
// whether or not a renderer is available for it.
var KnownContentTypes = []string{ContentTypePlain, ContentTypeMarkdown, ContentTypeRST}

// Input is one document to convert.
type Input struct {
	Path    string    // source path, used for self-reference detection and errors
	Lines   []string  // document lines without terminators
	ModTime time.Time // default for an empty revision date (zero = now)
}

// Result is a rendered page.
type Result struct {
	HTML        []byte
	DocID       int
	DocNum      string // zero-padded identifier, "0005"
	Title       string // "REP 5 -- Title"
	ContentType string
}

// Links configures the URL patterns used for generated links. Empty fields
// fall back to the defaults.
type Links struct {
	RFCURL       string // printf pattern with one %d, e.g. "http://www.faqs.org/rfcs/rfc%d.html"
	DocURL       string // printf pattern with one %d, e.g. "rep-%04d.html"
	SourceURL    string // printf pattern with one %d for the document source
	TypeRegistry int    // document listing the content types
}

// DefaultLinks returns the standard link patterns.
func DefaultLinks() Links {
	d := pipeline.DefaultLinks()
	return Links{
		RFCURL:       d.RFCURL,
		DocURL:       d.DocURL,
		SourceURL:    d.SourceURL,
		TypeRegistry: d.TypeRegistry,
	}
}

// withDefaults fills zero fields from DefaultLinks.
func (l Links) withDefaults() Links {
	d := DefaultLinks()
	if l.RFCURL == "" {
		l.RFCURL = d.RFCURL
	}
	if l.DocURL == "" {
		l.DocURL = d.DocURL
	}
	if l.SourceURL == "" {
		l.SourceURL = d.SourceURL
	}
	if l.TypeRegistry == 0 {
		l.TypeRegistry = d.TypeRegistry
	}
	return l
}

// Default page values.
const (
	DefaultHome     = "/reps"
	DefaultEncoding = "utf-8"
	defaultVersion  = "dev"
)
