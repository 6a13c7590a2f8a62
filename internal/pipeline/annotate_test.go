package pipeline

import (
	"html"
	"testing"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// TestAnnotate - Recognized Tokens
// ---------------------------------------------------------------------------

func TestAnnotate(t *testing.T) {
	t.Parallel()

	a := NewAnnotator(DefaultLinks())

	tests := []struct {
		name    string
		text    string
		current string
		want    string
	}{
		{
			name: "url strips sentence period from target",
			text: "see http://example.com/x. ",
			want: `see <a href="http://example.com/x">http://example.com/x.</a> `,
		},
		{
			name: "url inside parentheses",
			text: "(http://example.com)",
			want: `(<a href="http://example.com">http://example.com</a>)`,
		},
		{
			name: "https url with query escapes ampersand",
			text: "https://x.org/a?b=1&c=2",
			want: `<a href="https://x.org/a?b=1&amp;c=2">https://x.org/a?b=1&amp;c=2</a>`,
		},
		{
			name: "ftp url with trailing comma and colon",
			text: "ftp://ftp.example.org/pub:,",
			want: `<a href="ftp://ftp.example.org/pub">ftp://ftp.example.org/pub:,</a>`,
		},
		{
			name: "scheme without body is text",
			text: "ftp: nothing",
			want: "ftp: nothing",
		},
		{
			name: "rfc with space",
			text: "RFC 2822",
			want: `<a href="http://www.faqs.org/rfcs/rfc2822.html">RFC 2822</a>`,
		},
		{
			name: "rfc with hyphen",
			text: "RFC-822",
			want: `<a href="http://www.faqs.org/rfcs/rfc822.html">RFC-822</a>`,
		},
		{
			name: "rfc without separator",
			text: "RFC822",
			want: `<a href="http://www.faqs.org/rfcs/rfc822.html">RFC822</a>`,
		},
		{
			name: "rfc without digits is text",
			text: "RFC editor",
			want: "RFC editor",
		},
		{
			name: "rep citation zero padded",
			text: "REP 9",
			want: `<a href="rep-0009.html">REP 9</a>`,
		},
		{
			name: "rep citation with tab",
			text: "REP\t12.",
			want: "<a href=\"rep-0012.html\">REP\t12</a>.",
		},
		{
			name: "rep without whitespace is text",
			text: "REP9",
			want: "REP9",
		},
		{
			name: "rep with punctuation is text",
			text: "REP: 9",
			want: "REP: 9",
		},
		{
			name:    "document file links to page",
			text:    "see rep-0005.rst",
			current: "rep-0001.rst",
			want:    `see <a href="rep-0005.html">rep-0005.rst</a>`,
		},
		{
			name:    "document file without extension",
			text:    "rep-0012",
			current: "rep-0001.rst",
			want:    `<a href="rep-0012.html">rep-0012</a>`,
		},
		{
			name:    "document file with other extension keeps it outside",
			text:    "rep-0012.html",
			current: "rep-0001.rst",
			want:    `<a href="rep-0012.html">rep-0012</a>.html`,
		},
		{
			name:    "self reference is text",
			text:    "this is rep-0005.rst",
			current: "rep-0005.rst",
			want:    "this is rep-0005.rst",
		},
		{
			name:    "self reference with directory in current",
			text:    "rep-0005.rst",
			current: "docs/rep-0005.rst",
			want:    "rep-0005.rst",
		},
		{
			name: "citations mixed with markup characters",
			text: "Hello RFC 822 & <REP 5>.",
			want: `Hello <a href="http://www.faqs.org/rfcs/rfc822.html">RFC 822</a> &amp; &lt;<a href="rep-0005.html">REP 5</a>&gt;.`,
		},
		{
			name: "non-ascii text preserved",
			text: "naïve café über",
			want: "naïve café über",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := a.Annotate(tt.text, tt.current)
			if got != tt.want {
				t.Errorf("Annotate(%q)\n got: %s\nwant: %s", tt.text, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestAnnotate_EscapesPlainText - Unrecognized Text
// ---------------------------------------------------------------------------

func TestAnnotate_EscapesPlainText(t *testing.T) {
	t.Parallel()

	a := NewAnnotator(DefaultLinks())

	inputs := []string{
		"",
		"plain words",
		`a < b & c > "d" 'e'`,
		"   indented\twith tabs   ",
		"<script>alert('x')</script>",
		"RE P 5 and R FC 7",
		"\x00\x01 control",
	}

	for _, in := range inputs {
		if got, want := a.Annotate(in, ""), html.EscapeString(in); got != want {
			t.Errorf("Annotate(%q) = %q, want %q", in, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestAnnotate_CustomLinks - Injected Configuration
// ---------------------------------------------------------------------------

func TestAnnotate_CustomLinks(t *testing.T) {
	t.Parallel()

	a := NewAnnotator(Links{
		RFCURL: "https://www.rfc-editor.org/rfc/rfc%d",
		DocURL: "/reps/%d/",
	})

	tests := []struct {
		text string
		want string
	}{
		{
			text: "RFC 2119 and REP 3",
			want: `<a href="https://www.rfc-editor.org/rfc/rfc2119">RFC 2119</a> and <a href="/reps/3/">REP 3</a>`,
		},
		{
			text: "see rep-0006.txt",
			want: `see <a href="/reps/6/">rep-0006.txt</a>`,
		},
	}

	for _, tt := range tests {
		if got := a.Annotate(tt.text, ""); got != tt.want {
			t.Errorf("Annotate(%q)\n got: %s\nwant: %s", tt.text, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestAnnotate_InvalidUTF8 - Malformed Input Bytes
// ---------------------------------------------------------------------------

func TestAnnotate_InvalidUTF8(t *testing.T) {
	t.Parallel()

	a := NewAnnotator(DefaultLinks())

	tests := []struct {
		name string
		text string
		want string
	}{
		{"leading bytes", "\xff\xfe bad utf8", "\uFFFD\uFFFD bad utf8"},
		{"latin-1 letter", "caf\xe9 & tea", "caf\uFFFD &amp; tea"},
		{"next to citation", "\xe9RFC 822", `\uFFFD<a href="http://www.faqs.org/rfcs/rfc822.html">RFC 822</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := a.Annotate(tt.text, "")
			if got != tt.want {
				t.Errorf("Annotate(%q) = %q, want %q", tt.text, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Annotate(%q) produced invalid UTF-8", tt.text)
			}
		})
	}
}
