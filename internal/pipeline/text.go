package pipeline

import (
	"slices"
	"strings"
	"unicode/utf8"
)

const replacementChar = "\uFFFD"

// SplitLines splits document text into lines without terminators.
// CRLF and CR line endings are normalized; a final newline does not produce
// an empty trailing line. Invalid UTF-8 sequences become U+FFFD.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ToValidUTF8(text, replacementChar)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// ValidLines returns lines with invalid UTF-8 sequences replaced by U+FFFD.
// The input slice is returned unchanged when every line is valid.
func ValidLines(lines []string) []string {
	i := slices.IndexFunc(lines, func(l string) bool { return !utf8.ValidString(l) })
	if i < 0 {
		return lines
	}
	out := slices.Clone(lines)
	for ; i < len(out); i++ {
		out[i] = strings.ToValidUTF8(out[i], replacementChar)
	}
	return out
}
