// Package hints builds actionable suffixes for error messages, formatted as
// "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-rep2html/internal/fileutil"
)

// IsInContainer detects Docker and similar runtimes.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// inCI reports whether a common CI variable is set.
func inCI() bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForBrowser returns hints for --browse failures.
func ForBrowser() string {
	var hints []string
	if inCI() || IsInContainer() {
		hints = append(hints, "no desktop session in CI/Docker; drop --browse")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to choose a browser")
	}
	return formatHints(hints)
}

// ForNotDocument explains what a convertible document starts with.
func ForNotDocument() string {
	return format(`documents start with header fields such as "REP: 5", then a blank line`)
}

// ForMissingSource suggests how arguments are resolved.
func ForMissingSource() string {
	return format("pass a path or a number; 5 means rep-0005.rst in the input directory")
}

// ForConfigNotFound suggests --config or one of the searched user paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(slashPath(p), ".config/go-rep2html") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForTemplate lists the slots a page template must reference.
func ForTemplate(required []string) string {
	if len(required) == 0 {
		return ""
	}
	slots := make([]string, len(required))
	for i, name := range required {
		slots[i] = "{{." + name + "}}"
	}
	return format("page templates must reference " + strings.Join(slots, ", "))
}

// ForRenderer explains unsupported content types.
func ForRenderer(contentType string) string {
	return format("no renderer for " + contentType + "; use text/plain or text/markdown")
}

// ForOutputDirectory returns hints for output directory errors.
func ForOutputDirectory() string {
	return format("check the output directory exists and is writable")
}

// slashPath normalizes separators so user paths match on every OS.
func slashPath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
