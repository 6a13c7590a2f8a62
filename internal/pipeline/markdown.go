package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrMarkdownConversion indicates goldmark failed to render a body.
var ErrMarkdownConversion = errors.New("markdown conversion failed")

// docSourceLink matches relative links to document sources, e.g. rep-0005.rst#motivation.
var docSourceLink = regexp.MustCompile(`^(rep-\d+)\.(?:rst|txt|md)(#.*)?$`)

// MarkdownRenderer renders text/markdown bodies with goldmark. Links to
// document sources are pointed at their HTML pages and citations in prose
// are linked the same way as in plain-text bodies.
type MarkdownRenderer struct {
	md        goldmark.Markdown
	annotator *Annotator
}

// NewMarkdownRenderer creates a MarkdownRenderer with GFM, footnotes and
// class-based syntax highlighting. Raw HTML in the source is not rendered.
func NewMarkdownRenderer(links Links) *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
		),
	)
	return &MarkdownRenderer{md: md, annotator: NewAnnotator(links)}
}

// RenderBody implements BodyRenderer. goldmark has no context support, so
// conversion runs in a goroutine and the caller's context bounds the wait.
func (r *MarkdownRenderer) RenderBody(ctx context.Context, lines []string, bc BodyContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(strings.Join(lines, "\n")), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		out, err := r.postProcess(buf.String(), bc.Current)
		if err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrMarkdownConversion, err)}
			return
		}
		done <- result{html: `<div class="content">` + "\n" + out + "</div>\n"}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// postProcess rewrites document links and annotates prose in a rendered fragment.
func (r *MarkdownRenderer) postProcess(fragment, current string) (string, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}

	if err := r.walk(body, current); err != nil {
		return "", err
	}

	var buf strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func (r *MarkdownRenderer) walk(n *html.Node, current string) error {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.A:
			rewriteDocLink(n)
			return nil
		case atom.Code, atom.Pre, atom.Script, atom.Style:
			return nil
		}
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.TextNode {
			if err := r.annotateText(c, current); err != nil {
				return err
			}
		} else if err := r.walk(c, current); err != nil {
			return err
		}
		c = next
	}
	return nil
}

// annotateText replaces a text node with the annotator's markup when the
// text holds at least one recognized token.
func (r *MarkdownRenderer) annotateText(n *html.Node, current string) error {
	annotated := r.annotator.Annotate(n.Data, current)
	if annotated == html.EscapeString(n.Data) {
		return nil
	}
	parent := n.Parent
	nodes, err := html.ParseFragment(strings.NewReader(annotated), parent)
	if err != nil {
		return err
	}
	for _, c := range nodes {
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
	return nil
}

// rewriteDocLink points a relative link to a document source at its page.
func rewriteDocLink(n *html.Node) {
	for i, attr := range n.Attr {
		if attr.Key != "href" {
			continue
		}
		if m := docSourceLink.FindStringSubmatch(attr.Val); m != nil {
			n.Attr[i].Val = m[1] + ".html" + m[2]
		}
	}
}
