package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"text/template"
	"text/template/parse"

	sprig "github.com/go-task/slim-sprig/v3"
)

// Sentinel errors for page composition.
var (
	ErrTemplateParse   = errors.New("invalid page template")
	ErrTemplateSlots   = errors.New("page template is missing required slots")
	ErrTemplateExecute = errors.New("page template execution failed")
)

// Slot names available to page templates.
const (
	SlotTitle      = "Title"
	SlotDocNum     = "DocNum"
	SlotStylesheet = "Stylesheet"
	SlotHeader     = "Header"
	SlotBody       = "Body"
	SlotIndexURL   = "IndexURL"
	SlotHome       = "Home"
	SlotEncoding   = "Encoding"
	SlotVersion    = "Version"
)

// RequiredSlots must all be referenced by a page template.
var RequiredSlots = []string{SlotTitle, SlotDocNum, SlotStylesheet, SlotHeader, SlotBody}

// IndexNavMarkup links back to the index. It is removed from the template
// when the index itself is composed.
const IndexNavMarkup = `[<b><a href="{{.IndexURL}}">REP Index</a></b>]`

// Slots maps slot names to already rendered markup.
type Slots map[string]string

// Compositor fills a page template with rendered slots.
type Compositor struct {
	page  *template.Template
	index *template.Template
}

// NewCompositor parses a page template and checks that it references every
// required slot.
func NewCompositor(text string) (*Compositor, error) {
	page, err := parsePage("page", text)
	if err != nil {
		return nil, err
	}
	missing, unknown := checkSlots(page)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrTemplateSlots, strings.Join(missing, ", "))
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: unknown slots %s", ErrTemplateParse, strings.Join(unknown, ", "))
	}
	index, err := parsePage("index", strings.ReplaceAll(text, IndexNavMarkup, ""))
	if err != nil {
		return nil, err
	}
	return &Compositor{page: page, index: index}, nil
}

// Compose renders the page. The index template variant is used when the
// DocNum slot is the index document number.
func (c *Compositor) Compose(slots Slots) ([]byte, error) {
	tmpl := c.page
	if n, err := strconv.Atoi(slots[SlotDocNum]); err == nil && n == IndexDocID {
		tmpl = c.index
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string(slots)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}
	return buf.Bytes(), nil
}

// parsePage parses a page template. Templates may call the string and list
// helpers of sprig, e.g. {{.Title | upper}}.
func parsePage(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}
	return tmpl, nil
}

// checkSlots returns the required slots the template never references and
// the referenced names that are not slots.
func checkSlots(tmpl *template.Template) (missing, unknown []string) {
	seen := make(map[string]bool)
	for _, t := range tmpl.Templates() {
		if t.Tree != nil {
			collectFields(t.Tree.Root, seen)
		}
	}
	for _, slot := range RequiredSlots {
		if !seen[slot] {
			missing = append(missing, slot)
		}
	}
	for name := range seen {
		if !IsSlot(name) {
			unknown = append(unknown, name)
		}
	}
	slices.Sort(unknown)
	return missing, unknown
}

func collectFields(node parse.Node, seen map[string]bool) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, c := range n.Nodes {
			collectFields(c, seen)
		}
	case *parse.ActionNode:
		collectFields(n.Pipe, seen)
	case *parse.PipeNode:
		if n == nil {
			return
		}
		for _, cmd := range n.Cmds {
			for _, arg := range cmd.Args {
				collectFields(arg, seen)
			}
		}
	case *parse.FieldNode:
		if len(n.Ident) > 0 {
			seen[n.Ident[0]] = true
		}
	case *parse.IfNode:
		collectBranch(&n.BranchNode, seen)
	case *parse.RangeNode:
		collectBranch(&n.BranchNode, seen)
	case *parse.WithNode:
		collectBranch(&n.BranchNode, seen)
	case *parse.TemplateNode:
		collectFields(n.Pipe, seen)
	}
}

func collectBranch(b *parse.BranchNode, seen map[string]bool) {
	collectFields(b.Pipe, seen)
	collectFields(b.List, seen)
	collectFields(b.ElseList, seen)
}

// StylesheetLink returns a link element for an external stylesheet.
func StylesheetLink(href string) string {
	return `<link rel="stylesheet" href="` + template.HTMLEscapeString(href) + `" type="text/css" />`
}

// InlineStyle returns a style element holding css. "</" is escaped so the
// stylesheet cannot close the element early.
func InlineStyle(css string) string {
	return "<style>\n" + strings.ReplaceAll(css, "</", `<\/`) + "\n</style>"
}

// slotNames lists every slot a template may reference.
var slotNames = []string{
	SlotTitle, SlotDocNum, SlotStylesheet, SlotHeader, SlotBody,
	SlotIndexURL, SlotHome, SlotEncoding, SlotVersion,
}

// IsSlot reports whether name is a known slot.
func IsSlot(name string) bool {
	return slices.Contains(slotNames, name)
}
