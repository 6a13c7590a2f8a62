package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMarkdownRenderer_RenderBody(t *testing.T) {
	t.Parallel()

	r := NewMarkdownRenderer(DefaultLinks())
	lines := []string{
		"# Motivation",
		"",
		"See [the guidelines](rep-0001.rst#rationale) and RFC 2119.",
		"",
		"Self links like rep-0012.md stay plain.",
		"",
		"<script>alert(1)</script>",
		"",
		"```go",
		"// REP 5 in code is left alone",
		"x := 1",
		"```",
	}

	got, err := r.RenderBody(context.Background(), lines, BodyContext{DocID: "12", Current: "rep-0012.md"})
	if err != nil {
		t.Fatalf("RenderBody() unexpected error: %v", err)
	}

	for _, want := range []string{
		`<div class="content">`,
		`<h1 id="motivation">Motivation</h1>`,
		`<a href="rep-0001.html#rationale">the guidelines</a>`,
		`<a href="http://www.faqs.org/rfcs/rfc2119.html">RFC 2119</a>`,
		`class="chroma"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderBody() missing %q in:\n%s", want, got)
		}
	}

	for _, unwanted := range []string{
		"<script>",
		`href="rep-0012.html"`,
		`href="rep-0005.html"`,
	} {
		if strings.Contains(got, unwanted) {
			t.Errorf("RenderBody() should not contain %q in:\n%s", unwanted, got)
		}
	}
}

func TestMarkdownRenderer_LeavesExternalLinks(t *testing.T) {
	t.Parallel()

	r := NewMarkdownRenderer(DefaultLinks())
	got, err := r.RenderBody(context.Background(), []string{"[site](https://example.org/rep-0001.rst)"}, BodyContext{})
	if err != nil {
		t.Fatalf("RenderBody() unexpected error: %v", err)
	}
	if !strings.Contains(got, `href="https://example.org/rep-0001.rst"`) {
		t.Errorf("external link rewritten: %s", got)
	}
}

func TestMarkdownRenderer_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMarkdownRenderer(DefaultLinks()).RenderBody(ctx, []string{"# x"}, BodyContext{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RenderBody() error = %v, want context.Canceled", err)
	}
}
