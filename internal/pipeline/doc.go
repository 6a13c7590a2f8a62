// Package pipeline implements the document-to-HTML transformation engine.
//
// A document is an RFC 2822 style header block, a blank line, and free-form
// body text. The engine is split into stages that run in this order:
//   - Content-type detection over the header block
//   - Header parsing and field-specific rendering into a field table
//   - Body rendering: the plain-text structurer (headings and preformatted
//     blocks) or the Markdown renderer, depending on the content type
//   - Page composition from a text/template page template
//
// The plain-text structurer hands ordinary lines to the link annotator, which
// escapes text and turns URLs, document file names and RFC/REP citations into
// anchors. Email addresses are masked or linked by the obfuscator.
//
// Every stage is pure: it reads its arguments and an immutable Links value
// and returns strings. File I/O and orchestration live in the root rep2html
// package.
package pipeline
