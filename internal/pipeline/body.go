package pipeline

import (
	"context"
	"html"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gosimple/slug"
)

// localVarsMarker starts the editor metadata section; nothing after it is rendered.
const localVarsMarker = "Local Variables:"

// maxIndexDigits bounds the document number in an index row.
const maxIndexDigits = 4

// BodyContext describes the document whose body is rendered.
type BodyContext struct {
	// DocID is the identifier as written in the header; it ends up in
	// mailto subjects.
	DocID string
	// Index enables the index-row and contact-line rewrites.
	Index bool
	// Current is the source file base name, never linked from its own body.
	Current string
}

// BodyRenderer renders the lines following the header into an HTML fragment.
type BodyRenderer interface {
	RenderBody(ctx context.Context, lines []string, bc BodyContext) (string, error)
}

// bodyState is the Structurer's mode between lines.
//
// stateHeading: no <pre> is open. Blank lines are dropped. An indented line
// opens a <pre> and moves to statePre. A flush-left line is a heading.
//
// statePre: a <pre> is open. Blank and indented lines are written into it.
// A flush-left line closes it, becomes a heading, and moves to stateHeading.
//
// End of input in statePre closes the block.
type bodyState int

const (
	stateHeading bodyState = iota
	statePre
)

// Structurer renders plain-text bodies as alternating headings and
// preformatted blocks.
type Structurer struct {
	links      Links
	annotator  *Annotator
	obfuscator *Obfuscator
}

// NewStructurer creates a Structurer that annotates lines using links.
func NewStructurer(links Links) *Structurer {
	links = links.withDefaults()
	return &Structurer{
		links:      links,
		annotator:  NewAnnotator(links),
		obfuscator: NewObfuscator(links),
	}
}

// RenderBody implements BodyRenderer.
func (s *Structurer) RenderBody(ctx context.Context, lines []string, bc BodyContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.Structure(lines, bc), nil
}

// Structure renders body lines. It never fails: unrecognized text is escaped.
func (s *Structurer) Structure(lines []string, bc BodyContext) string {
	var b strings.Builder
	b.WriteString(`<div class="content">` + "\n")

	state := stateHeading
	ids := make(map[string]int)

	for _, line := range lines {
		if strings.HasPrefix(line, "\f") {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == localVarsMarker {
			break
		}

		if trimmed != "" && isFlushLeft(line) {
			if state == statePre {
				b.WriteString("</pre>\n")
			}
			b.WriteString(heading(trimmed, ids))
			state = stateHeading
			continue
		}
		if trimmed == "" && state == stateHeading {
			continue
		}

		out, ok := "", false
		if bc.Index {
			out, ok = s.indexLine(line, bc.DocID)
		}
		if !ok {
			out = s.annotator.Annotate(line, bc.Current)
		}
		if state == stateHeading {
			b.WriteString("<pre>\n")
			state = statePre
		}
		b.WriteString(out)
		b.WriteByte('\n')
	}

	if state == statePre {
		b.WriteString("</pre>\n")
	}
	b.WriteString("</div>\n")
	return b.String()
}

// indexLine applies the index document rewrites. A row whose second token
// (or, for rows without a status column, first token) is a document number
// gets that number linked. A line ending in an address gets the address
// linked. Other lines are left to the annotator.
func (s *Structurer) indexLine(line, docID string) (string, bool) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", false
	}
	line = strings.TrimRightFunc(line, unicode.IsSpace)

	for _, tok := range indexCandidates(parts) {
		if !isIndexNumber(tok) {
			continue
		}
		n, _ := strconv.Atoi(tok)
		return replaceFirst(line, tok, anchor(s.links.Doc(n), tok)), true
	}

	if last := parts[len(parts)-1]; strings.Contains(last, "@") {
		return replaceFirst(line, last, s.obfuscator.Link(last, docID)), true
	}
	return "", false
}

func indexCandidates(parts []string) []string {
	if len(parts) > 1 {
		return []string{parts[1], parts[0]}
	}
	return parts
}

// replaceFirst replaces the first occurrence of old in line with markup and
// escapes the text around it.
func replaceFirst(line, old, markup string) string {
	before, after, _ := strings.Cut(line, old)
	return html.EscapeString(before) + markup + html.EscapeString(after)
}

// heading renders a heading with an id unique within the body.
func heading(text string, ids map[string]int) string {
	id := slug.Make(text)
	if id == "" {
		return "<h3>" + html.EscapeString(text) + "</h3>\n"
	}
	if n := ids[id]; n > 0 {
		ids[id] = n + 1
		id += "-" + strconv.Itoa(n)
	} else {
		ids[id] = 1
	}
	return `<h3 id="` + id + `">` + html.EscapeString(text) + "</h3>\n"
}

func isFlushLeft(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return !unicode.IsSpace(r)
}

func isIndexNumber(tok string) bool {
	return len(tok) >= 1 && len(tok) <= maxIndexDigits && countDigits(tok) == len(tok)
}
