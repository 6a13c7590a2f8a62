// Package rep2html converts REP documents to HTML pages.
//
// A REP is a plain-text document that opens with RFC 2822 style header
// fields ("REP: 5", "Title: ...", "Author: ..."), a blank line, and a body.
// The converter renders the header as a field table and the body as
// alternating headings and preformatted blocks, with URLs, RFC and REP
// citations turned into links and email addresses obfuscated. Documents
// declaring "Content-Type: text/markdown" get a Markdown body instead.
//
// # Quick Start
//
//	conv, err := rep2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := conv.ConvertFile(ctx, "rep-0005.rst")
//	if err != nil {
//	    if rep2html.IsSkippable(err) {
//	        return // not a REP
//	    }
//	    log.Fatal(err)
//	}
//	os.WriteFile("rep-0005.html", res.HTML, 0o664)
//
// Callers that already hold the lines use Convert:
//
//	res, err := conv.Convert(ctx, rep2html.Input{Path: path, Lines: lines})
//
// # Configuration
//
//	conv, err := rep2html.NewConverter(
//	    rep2html.WithLinks(rep2html.Links{RFCURL: "https://www.rfc-editor.org/rfc/rfc%d"}),
//	    rep2html.WithTrustList("announce@example.org"),
//	    rep2html.WithAssetPath("/path/to/assets"),
//	    rep2html.WithInlineStyle(true),
//	)
//
// A Converter is immutable once built and safe for concurrent use, so a
// batch can share one across goroutines.
//
// # Errors
//
// Inputs that are not REPs (ErrNotDocument), carry a non-numeric identifier
// (ErrMalformedID) or do not exist (ErrMissingSource) are reported through
// *ConversionError and IsSkippable returns true for them. Body content never
// causes an error.
package rep2html
