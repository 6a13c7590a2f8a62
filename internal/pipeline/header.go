package pipeline

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Sentinel errors for header parsing.
var (
	ErrNotDocument = errors.New("not a document")
	ErrMalformedID = errors.New("malformed document identifier")
)

// Header field names with special meaning (lowercase).
const (
	fieldTitle       = "title"
	fieldContentType = "content-type"
)

// idFields name the field that holds the document identifier.
var idFields = []string{"rep", "document"}

// Field is one header field. Value keeps continuation lines joined with "\n".
type Field struct {
	Name  string
	Value string
}

// Header is the parsed leading field block of a document.
type Header struct {
	Fields []Field
	// ID is the parsed document identifier and RawID its source text.
	ID    int
	RawID string
	// Title is the title field value; DocTitle is the composite page title.
	Title    string
	DocTitle string
}

// DocNum returns the identifier zero-padded to four digits.
func (h *Header) DocNum() string {
	return fmt.Sprintf("%04d", h.ID)
}

// IsIndex reports whether the header belongs to the index document.
func (h *Header) IsIndex() bool {
	return h.ID == IndexDocID
}

// Get returns the value of the first field named name (case-insensitive).
func (h *Header) Get(name string) (string, bool) {
	for _, f := range h.Fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// HeaderError reports a header problem with the offending field.
type HeaderError struct {
	Field string
	Value string
	Err   error
}

func (e *HeaderError) Error() string {
	switch {
	case e.Field != "" && e.Value != "":
		return fmt.Sprintf("%v: field %s: %q", e.Err, e.Field, e.Value)
	case e.Field != "":
		return fmt.Sprintf("%v: field %s", e.Err, e.Field)
	case e.Value != "":
		return fmt.Sprintf("%v: %q", e.Err, e.Value)
	}
	return e.Err.Error()
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}

// ParseHeader parses the field block at the start of lines. It returns the
// header and the number of lines consumed, including the terminating blank
// line.
//
// The block ends at the first blank line. A line starting with whitespace
// continues the previous field. A flush-left line without a colon, or a
// continuation with no field before it, means the input is not a document.
// A missing identifier field is ErrNotDocument; one that is not a
// non-negative integer is ErrMalformedID.
func ParseHeader(lines []string) (*Header, int, error) {
	h := &Header{}
	consumed := 0
	idField := ""

	for _, line := range lines {
		consumed++
		if strings.TrimSpace(line) == "" {
			break
		}

		if isContinuation(line) {
			if len(h.Fields) == 0 {
				return nil, consumed, &HeaderError{Value: line, Err: ErrNotDocument}
			}
			last := &h.Fields[len(h.Fields)-1]
			last.Value += "\n" + line
			h.noteField(*last, &idField)
			continue
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, consumed, &HeaderError{Value: line, Err: ErrNotDocument}
		}
		f := Field{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)}
		h.Fields = append(h.Fields, f)
		h.noteField(f, &idField)
	}

	if idField == "" {
		return nil, consumed, &HeaderError{Err: ErrNotDocument}
	}
	id, err := strconv.Atoi(strings.TrimSpace(h.RawID))
	if err != nil || id < 0 {
		return nil, consumed, &HeaderError{Field: idField, Value: h.RawID, Err: ErrMalformedID}
	}
	h.ID = id
	h.DocTitle = "REP " + strings.TrimSpace(h.RawID) + " -- " + h.Title
	return h, consumed, nil
}

func (h *Header) noteField(f Field, idField *string) {
	key := strings.ToLower(f.Name)
	switch {
	case key == fieldTitle:
		h.Title = f.Value
	case slices.Contains(idFields, key):
		h.RawID = f.Value
		*idField = f.Name
	}
}

func isContinuation(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}
