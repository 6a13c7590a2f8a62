package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-rep2html/internal/assets"
	"github.com/alnah/go-rep2html/internal/dateutil"
	"github.com/alnah/go-rep2html/internal/fileutil"
	"github.com/alnah/go-rep2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength       = 4096
	MaxURLLength        = 2048
	MaxEmailLength      = 254 // RFC 5321
	MaxTrustListEntries = 100
	MaxWorkers          = 32
)

// Log levels.
const (
	LogQuiet  = "quiet"
	LogNormal = "normal"
	LogDebug  = "debug"
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-rep2html"

// Config holds all configuration for document conversion.
type Config struct {
	Input     InputConfig   `yaml:"input"`
	Output    OutputConfig  `yaml:"output"`
	Links     LinksConfig   `yaml:"links"`
	TrustList []string      `yaml:"trustList,omitempty"` // nil = built-in list
	Header    HeaderConfig  `yaml:"header"`
	Assets    AssetsConfig  `yaml:"assets"`
	Install   InstallConfig `yaml:"install"`
	Log       LogConfig     `yaml:"log"`
	Workers   int           `yaml:"workers"` // 0 = auto
}

// InputConfig defines where documents are looked up.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = current directory
}

// OutputConfig defines where pages are written.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the source
}

// LinksConfig holds URL templates; each takes one integer.
type LinksConfig struct {
	RFCURL       string `yaml:"rfcURL"`
	DocURL       string `yaml:"docURL"`
	SourceURL    string `yaml:"sourceURL"`
	TypeRegistry int    `yaml:"typeRegistry"` // document describing content types
}

// HeaderConfig tunes header rendering.
type HeaderConfig struct {
	DateFormat string `yaml:"dateFormat"` // token format, e.g. DD-MMM-YYYY
}

// AssetsConfig defines page template and stylesheet options.
type AssetsConfig struct {
	BasePath       string `yaml:"basePath"` // empty = embedded assets only
	Template       string `yaml:"template"`
	Style          string `yaml:"style"`
	StylesheetHref string `yaml:"stylesheetHref"` // link target when not inlined
	Inline         bool   `yaml:"inline"`         // embed the stylesheet in each page
}

// InstallConfig defines the local publishing directory.
type InstallConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig defines diagnostic output.
type LogConfig struct {
	Level string `yaml:"level"` // quiet, normal, debug
}

// urlVerb matches an fmt integer verb such as %d or %04d.
var urlVerb = regexp.MustCompile(`%[-+# 0]*[0-9]*d`)

// Validate checks lengths, URL templates and enumerations.
// LoadConfig calls it; library users building a Config by hand can too.
func (c *Config) Validate() error {
	paths := []struct{ name, value string }{
		{"input.defaultDir", c.Input.DefaultDir},
		{"output.defaultDir", c.Output.DefaultDir},
		{"assets.basePath", c.Assets.BasePath},
		{"install.dir", c.Install.Dir},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	templates := []struct{ name, value string }{
		{"links.rfcURL", c.Links.RFCURL},
		{"links.docURL", c.Links.DocURL},
		{"links.sourceURL", c.Links.SourceURL},
	}
	for _, u := range templates {
		if err := validateURLTemplate(u.name, u.value); err != nil {
			return err
		}
	}
	if c.Links.TypeRegistry < 0 {
		return fmt.Errorf("%w: links.typeRegistry must not be negative, got %d", ErrInvalidValue, c.Links.TypeRegistry)
	}

	if len(c.TrustList) > MaxTrustListEntries {
		return fmt.Errorf("%w: trustList has %d entries (max %d)", ErrInvalidValue, len(c.TrustList), MaxTrustListEntries)
	}
	for i, addr := range c.TrustList {
		name := fmt.Sprintf("trustList[%d]", i)
		if err := validateFieldLength(name, addr, MaxEmailLength); err != nil {
			return err
		}
		if !strings.Contains(addr, "@") {
			return fmt.Errorf("%w: %s: %q is not an email address", ErrInvalidValue, name, addr)
		}
	}

	if c.Header.DateFormat != "" {
		if err := dateutil.Validate(c.Header.DateFormat); err != nil {
			return fmt.Errorf("header.dateFormat: %w", err)
		}
	}

	for _, a := range []struct{ name, value string }{
		{"assets.template", c.Assets.Template},
		{"assets.style", c.Assets.Style},
	} {
		if a.value == "" {
			continue
		}
		if err := assets.ValidateAssetName(a.value); err != nil {
			return fmt.Errorf("%s: %w", a.name, err)
		}
	}
	if err := validateFieldLength("assets.stylesheetHref", c.Assets.StylesheetHref, MaxURLLength); err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Level) {
	case "", LogQuiet, LogNormal, LogDebug:
	default:
		return fmt.Errorf("%w: log.level %q (must be quiet, normal, or debug)", ErrInvalidValue, c.Log.Level)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	return nil
}

// validateURLTemplate accepts an empty template (built-in default) or one
// with exactly one integer verb and no other verbs.
func validateURLTemplate(name, value string) error {
	if value == "" {
		return nil
	}
	if err := validateFieldLength(name, value, MaxURLLength); err != nil {
		return err
	}
	rest := strings.ReplaceAll(value, "%%", "")
	if n := len(urlVerb.FindAllString(rest, -1)); n != 1 {
		return fmt.Errorf("%w: %s needs exactly one integer verb such as %%d, found %d", ErrInvalidValue, name, n)
	}
	if strings.Contains(urlVerb.ReplaceAllString(rest, ""), "%") {
		return fmt.Errorf("%w: %s has a non-integer verb", ErrInvalidValue, name)
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that uses every built-in default.
func DefaultConfig() *Config {
	return &Config{Log: LogConfig{Level: LogNormal}}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a path. Anything else is a
// name searched as name.yaml and name.yml in the current directory, then in
// the user config directory. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	path := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if path, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths returns the locations LoadConfig tries for a config name.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
