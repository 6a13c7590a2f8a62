package pipeline

import (
	"slices"
	"strings"
)

// Content types a document may declare.
const (
	ContentTypePlain    = "text/plain"
	ContentTypeMarkdown = "text/markdown"
	ContentTypeRST      = "text/x-rst"
)

// DetectContentType scans the header block for the body content type.
// A Content-Type field wins; otherwise an identifier field implies
// text/plain. A block with neither is ErrNotDocument. Parameters such as
// "; charset=utf-8" are dropped and the result is lowercase.
func DetectContentType(lines []string) (string, error) {
	hasID := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			break
		}
		if isContinuation(line) {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(name))
		switch {
		case key == fieldContentType:
			mediaType, _, _ := strings.Cut(value, ";")
			mediaType = strings.ToLower(strings.TrimSpace(mediaType))
			if mediaType == "" {
				return DefaultContentType, nil
			}
			return mediaType, nil
		case slices.Contains(idFields, key):
			hasID = true
		}
	}
	if !hasID {
		return "", &HeaderError{Err: ErrNotDocument}
	}
	return DefaultContentType, nil
}
