package pipeline

import (
	"fmt"
	"html"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-rep2html/internal/dateutil"
)

// DefaultContentType applies when a document has no Content-Type field.
const DefaultContentType = "text/plain"

const headerOpen = `<div class="header">
<table border="0" class="rfc2822 docutils field-list" frame="void" rules="none">
<col class="field-name" />
<col class="field-body" />
<tbody valign="top">
`

const headerClose = `</tbody>
</table>
</div>
<hr />
`

const fieldRow = `  <tr class="field"><th class="field-name">%s:&nbsp;</th><td class="field-body">%s</td></tr>` + "\n"

// fieldKind selects the rendering rule for a header field.
type fieldKind int

const (
	kindPlain fieldKind = iota
	kindAuthor
	kindContact
	kindCrossRef
	kindRevisionDate
	kindContentType
)

var fieldKinds = map[string]fieldKind{
	"author":             kindAuthor,
	"discussions-to":     kindContact,
	"discussion-contact": kindContact,
	"replaces":           kindCrossRef,
	"replaced-by":        kindCrossRef,
	"requires":           kindCrossRef,
	"last-modified":      kindRevisionDate,
	"revision-date":      kindRevisionDate,
	fieldContentType:     kindContentType,
}

// HeaderFormatter renders a parsed header as an HTML field table.
type HeaderFormatter struct {
	links      Links
	obfuscator *Obfuscator
	dateFormat string
}

// NewHeaderFormatter creates a HeaderFormatter. dateFormat is the token
// format for defaulted revision dates; empty means dateutil.RevisionDateFormat.
func NewHeaderFormatter(links Links, dateFormat string) *HeaderFormatter {
	if dateFormat == "" {
		dateFormat = dateutil.RevisionDateFormat
	}
	links = links.withDefaults()
	return &HeaderFormatter{
		links:      links,
		obfuscator: NewObfuscator(links),
		dateFormat: dateFormat,
	}
}

// Render returns the header block: one table row per field in source order,
// followed by a horizontal rule. modTime supplies empty revision dates.
func (f *HeaderFormatter) Render(h *Header, modTime time.Time) string {
	var b strings.Builder
	b.WriteString(headerOpen)
	for _, field := range h.Fields {
		b.WriteString(f.Row(field, h, modTime))
	}
	b.WriteString(headerClose)
	return b.String()
}

// Row renders a single field as a table row.
func (f *HeaderFormatter) Row(field Field, h *Header, modTime time.Time) string {
	return fmt.Sprintf(fieldRow, html.EscapeString(field.Name), f.Value(field, h, modTime))
}

// Value renders a field value according to its name.
func (f *HeaderFormatter) Value(field Field, h *Header, modTime time.Time) string {
	switch fieldKinds[strings.ToLower(field.Name)] {
	case kindAuthor:
		return f.addresses(field.Value, h, f.obfuscator.Obfuscate)
	case kindContact:
		return f.addresses(field.Value, h, f.obfuscator.Link)
	case kindCrossRef:
		return f.crossRefs(field.Value)
	case kindRevisionDate:
		return f.revisionDate(field.Value, h, modTime)
	case kindContentType:
		contentType := field.Value
		if contentType == "" {
			contentType = DefaultContentType
		}
		return anchor(f.links.Doc(f.links.TypeRegistry), contentType)
	default:
		return html.EscapeString(field.Value)
	}
}

// addresses renders a comma-separated list of people, addresses and URLs.
func (f *HeaderFormatter) addresses(value string, h *Header, render func(address, docID string) string) string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
			continue
		case strings.Contains(part, "@"):
			name, address := parseAddress(part)
			rendered := render(address, h.RawID)
			if name != "" {
				rendered = html.EscapeString(name) + " &lt;" + rendered + "&gt;"
			}
			out = append(out, rendered)
		case strings.HasPrefix(part, "http:"), strings.HasPrefix(part, "https:"):
			out = append(out, anchor(part, part))
		default:
			out = append(out, html.EscapeString(part))
		}
	}
	return strings.Join(out, ", ")
}

// crossRefs links every integer token to its document page.
func (f *HeaderFormatter) crossRefs(value string) string {
	tokens := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			out = append(out, html.EscapeString(tok))
			continue
		}
		out = append(out, anchor(f.links.Doc(n), strconv.Itoa(n)))
	}
	return strings.Join(out, " ")
}

func (f *HeaderFormatter) revisionDate(value string, h *Header, modTime time.Time) string {
	date := value
	if date == "" {
		formatted, err := dateutil.Format(modTime, f.dateFormat)
		if err != nil {
			formatted, _ = dateutil.Format(modTime, dateutil.RevisionDateFormat)
		}
		date = formatted
	}
	id, err := strconv.Atoi(strings.TrimSpace(h.RawID))
	if err != nil {
		return html.EscapeString(date)
	}
	return anchor(f.links.Source(id), date)
}

// parseAddress splits "Name <addr>" into its parts. Text that does not parse
// as an address is returned whole as the address.
func parseAddress(s string) (name, address string) {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return "", strings.Trim(s, "<> ")
	}
	return addr.Name, addr.Address
}
