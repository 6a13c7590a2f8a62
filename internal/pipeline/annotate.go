package pipeline

import (
	"html"
	"path"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// urlTrailing holds characters stripped from the end of a link target.
const urlTrailing = `();:,.?'"<>`

// docFilePrefix starts a document file token such as rep-0005.rst.
const docFilePrefix = "rep-"

// urlSchemes are tried in order; https must precede http.
var urlSchemes = []string{"https:", "http:", "ftp:"}

// docFileExts are the source extensions accepted after a document file token.
var docFileExts = []string{".rst", ".txt"}

// recognizer inspects s at the cursor and returns the rendered markup and the
// number of bytes consumed. A zero count means no match.
type recognizer func(a *Annotator, s, current string) (string, int)

// recognizers are tried in priority order at each cursor position.
var recognizers = []recognizer{
	(*Annotator).matchURL,
	(*Annotator).matchDocFile,
	(*Annotator).matchRFC,
	(*Annotator).matchREP,
}

// Annotator escapes free text and rewrites URLs, document file names and
// RFC/REP citations into anchors.
type Annotator struct {
	links Links
}

// NewAnnotator creates an Annotator that builds link targets from links.
func NewAnnotator(links Links) *Annotator {
	return &Annotator{links: links.withDefaults()}
}

// Annotate returns text with every character either consumed by a recognized
// token or escaped. current is the base name of the document being rendered;
// a file token naming it is not linked.
func (a *Annotator) Annotate(text, current string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)

	for i := 0; i < len(text); {
		rest := text[i:]
		consumed := 0
		for _, match := range recognizers {
			if out, n := match(a, rest, current); n > 0 {
				b.WriteString(out)
				consumed = n
				break
			}
		}
		if consumed == 0 {
			var r rune
			r, consumed = utf8.DecodeRuneInString(rest)
			if r == utf8.RuneError && consumed == 1 {
				b.WriteString(replacementChar)
			} else {
				b.WriteString(html.EscapeString(rest[:consumed]))
			}
		}
		i += consumed
	}
	return b.String()
}

func (a *Annotator) matchURL(s, _ string) (string, int) {
	for _, scheme := range urlSchemes {
		if !strings.HasPrefix(s, scheme) {
			continue
		}
		n := len(scheme)
		for n < len(s) && isURLByte(s[n]) {
			n++
		}
		if n == len(scheme) {
			return "", 0
		}
		text := s[:n]
		return anchor(strings.TrimRight(text, urlTrailing), text), n
	}
	return "", 0
}

func (a *Annotator) matchDocFile(s, current string) (string, int) {
	if !strings.HasPrefix(s, docFilePrefix) {
		return "", 0
	}
	n := len(docFilePrefix) + countDigits(s[len(docFilePrefix):])
	if n == len(docFilePrefix) {
		return "", 0
	}
	stem := s[:n]
	for _, ext := range docFileExts {
		if strings.HasPrefix(s[n:], ext) {
			n += len(ext)
			break
		}
	}
	text := s[:n]
	if isSelfReference(text, current) {
		return html.EscapeString(text), n
	}
	num, err := strconv.Atoi(s[len(docFilePrefix):len(stem)])
	if err != nil {
		return html.EscapeString(text), n
	}
	return anchor(a.links.Doc(num), text), n
}

func (a *Annotator) matchRFC(s, _ string) (string, int) {
	if !strings.HasPrefix(s, "RFC") {
		return "", 0
	}
	n := len("RFC")
	if n < len(s) && (s[n] == '-' || s[n] == ' ') {
		n++
	}
	digits := countDigits(s[n:])
	if digits == 0 {
		return "", 0
	}
	num, err := strconv.Atoi(s[n : n+digits])
	if err != nil {
		return "", 0
	}
	n += digits
	return anchor(a.links.RFC(num), s[:n]), n
}

func (a *Annotator) matchREP(s, _ string) (string, int) {
	if !strings.HasPrefix(s, "REP") {
		return "", 0
	}
	n := len("REP")
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !unicode.IsSpace(r) {
			break
		}
		n += size
	}
	if n == len("REP") {
		return "", 0
	}
	digits := countDigits(s[n:])
	if digits == 0 {
		return "", 0
	}
	num, err := strconv.Atoi(s[n : n+digits])
	if err != nil {
		return "", 0
	}
	n += digits
	return anchor(a.links.Doc(num), s[:n]), n
}

// isSelfReference reports whether a file token names the current document,
// with or without its extension.
func isSelfReference(token, current string) bool {
	if current == "" {
		return false
	}
	current = path.Base(strings.ReplaceAll(current, `\`, "/"))
	if token == current {
		return true
	}
	return trimExt(token) == trimExt(current)
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

func anchor(href, text string) string {
	return `<a href="` + html.EscapeString(href) + `">` + html.EscapeString(text) + `</a>`
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func isURLByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("-_/.+~:?#$=&,", c) >= 0
}
