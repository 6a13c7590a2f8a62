package rep2html

import (
	"time"

	"go.uber.org/zap"
)

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds the settings collected from options.
type converterConfig struct {
	links          Links
	trustList      []string
	assetPath      string
	templateName   string
	styleName      string
	stylesheetHref string
	inlineStyle    bool
	dateFormat     string
	home           string
	version        string
	now            func() time.Time
}

// WithLinks sets the link patterns. Zero fields keep their defaults.
func WithLinks(l Links) Option {
	return func(c *Converter) {
		c.cfg.links = l
	}
}

// WithTrustList replaces the addresses rendered as clickable mailto links
// in Author fields. Other addresses are masked.
func WithTrustList(addrs ...string) Option {
	return func(c *Converter) {
		c.cfg.trustList = append(make([]string, 0, len(addrs)), addrs...)
	}
}

// WithAssetPath sets a directory holding templates/ and styles/ that
// override the embedded assets by name.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithTemplate selects the page template by name ("rep") or file path.
func WithTemplate(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.templateName = nameOrPath
	}
}

// WithStyle selects the stylesheet by name ("rep") or file path.
func WithStyle(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.styleName = nameOrPath
	}
}

// WithStylesheetHref sets the URL the page links its stylesheet from.
// Ignored when the style is inlined.
func WithStylesheetHref(href string) Option {
	return func(c *Converter) {
		c.cfg.stylesheetHref = href
	}
}

// WithInlineStyle embeds the stylesheet in a <style> element instead of
// linking it.
func WithInlineStyle(inline bool) Option {
	return func(c *Converter) {
		c.cfg.inlineStyle = inline
	}
}

// WithDateFormat sets the format for revision dates taken from the file
// modification time, e.g. "DD-MMM-YYYY".
func WithDateFormat(format string) Option {
	return func(c *Converter) {
		c.cfg.dateFormat = format
	}
}

// WithHome sets the site root behind the page navigation links, such as the
// link to the document source.
func WithHome(home string) Option {
	return func(c *Converter) {
		c.cfg.home = home
	}
}

// WithVersion sets the generator version written into pages.
func WithVersion(v string) Option {
	return func(c *Converter) {
		c.cfg.version = v
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l == nil {
			l = zap.NewNop()
		}
		c.logger = l
	}
}

// WithNow sets the clock used when an input has no modification time.
// Panics if now is nil.
func WithNow(now func() time.Time) Option {
	if now == nil {
		panic("rep2html: WithNow clock must not be nil")
	}
	return func(c *Converter) {
		c.cfg.now = now
	}
}
