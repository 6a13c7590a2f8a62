package rep2html

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"github.com/alnah/go-rep2html/internal/assets"
	"github.com/alnah/go-rep2html/internal/dateutil"
	"github.com/alnah/go-rep2html/internal/fileutil"
	"github.com/alnah/go-rep2html/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.BodyRenderer = (*pipeline.Structurer)(nil)
	_ pipeline.BodyRenderer = (*pipeline.MarkdownRenderer)(nil)
	_ assets.AssetLoader    = (*assets.AssetResolver)(nil)
)

// Converter turns REP documents into HTML pages.
// Create with NewConverter. A Converter holds no per-document state and is
// safe for concurrent use.
type Converter struct {
	cfg         converterConfig
	logger      *zap.Logger
	links       pipeline.Links
	assetLoader assets.AssetLoader
	header      *pipeline.HeaderFormatter
	renderers   map[string]pipeline.BodyRenderer
	compositor  *pipeline.Compositor
	style       string
	stylesheet  string
}

// NewConverter creates a Converter. It loads and checks the page template
// and stylesheet up front so a bad template fails here rather than per page.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			links:          DefaultLinks(),
			stylesheetHref: "css/rep.css",
			home:           DefaultHome,
			version:        defaultVersion,
			now:            time.Now,
		},
		logger:      zap.NewNop(),
		assetLoader: assets.NewEmbeddedLoader(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.dateFormat != "" {
		if err := dateutil.Validate(c.cfg.dateFormat); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
		}
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	links := c.cfg.links.withDefaults()
	c.links = pipeline.Links{
		RFCURL:       links.RFCURL,
		DocURL:       links.DocURL,
		SourceURL:    links.SourceURL,
		TypeRegistry: links.TypeRegistry,
		TrustList:    c.cfg.trustList,
	}
	if c.links.TrustList == nil {
		c.links.TrustList = pipeline.DefaultTrustList
	}

	tmpl, err := c.resolveAsset(c.cfg.templateName, assets.DefaultTemplateName, c.assetLoader.LoadTemplate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateUnavailable, err)
	}
	c.style, err = c.resolveAsset(c.cfg.styleName, assets.DefaultStyleName, c.assetLoader.LoadStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateUnavailable, err)
	}
	c.compositor, err = pipeline.NewCompositor(tmpl)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplateUnavailable, err)
	}

	if c.cfg.inlineStyle {
		c.stylesheet = pipeline.InlineStyle(c.style)
	} else {
		c.stylesheet = pipeline.StylesheetLink(c.cfg.stylesheetHref)
	}

	c.header = pipeline.NewHeaderFormatter(c.links, c.cfg.dateFormat)
	custom := c.renderers
	c.renderers = map[string]pipeline.BodyRenderer{
		ContentTypePlain:    pipeline.NewStructurer(c.links),
		ContentTypeMarkdown: pipeline.NewMarkdownRenderer(c.links),
	}
	maps.Copy(c.renderers, custom)
	return c, nil
}

// resolveAsset treats a value with a path separator as a file to read and
// anything else as an asset name.
func (c *Converter) resolveAsset(value, fallback string, load func(string) (string, error)) (string, error) {
	if value == "" {
		value = fallback
	}
	if !fileutil.IsFilePath(value) {
		return load(value)
	}
	data, err := os.ReadFile(value) // #nosec G304 -- user-provided asset path
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", value, err)
	}
	return string(data), nil
}

// Style returns the loaded stylesheet content.
func (c *Converter) Style() string {
	return c.style
}

// Supports reports whether documents of contentType can be converted.
// It returns ErrRendererUnavailable for a known type without a renderer and
// ErrUnknownContentType otherwise.
func (c *Converter) Supports(contentType string) error {
	if _, ok := c.renderers[contentType]; ok {
		return nil
	}
	if contentType == ContentTypeRST {
		return fmt.Errorf("%w: %s", ErrRendererUnavailable, contentType)
	}
	return fmt.Errorf("%w: %q", ErrUnknownContentType, contentType)
}

// Convert renders one document. Errors are *ConversionError values; use
// IsSkippable to tell inputs that are not REPs from real failures.
func (c *Converter) Convert(ctx context.Context, in Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &ConversionError{Path: in.Path, Err: fmt.Errorf("internal error: %v", r)}
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, &ConversionError{Path: in.Path, Err: err}
	}

	start := time.Now()
	in.Lines = pipeline.ValidLines(in.Lines)

	contentType, err := pipeline.DetectContentType(in.Lines)
	if err != nil {
		return nil, wrapHeaderError(in.Path, err)
	}
	if err := c.Supports(contentType); err != nil {
		return nil, &ConversionError{Path: in.Path, Field: "Content-Type", Err: err}
	}

	h, consumed, err := pipeline.ParseHeader(in.Lines)
	if err != nil {
		return nil, wrapHeaderError(in.Path, err)
	}
	c.warnFields(in.Path, h)

	modTime := in.ModTime
	if modTime.IsZero() {
		modTime = c.cfg.now()
	}

	current := ""
	if in.Path != "" {
		current = filepath.Base(in.Path)
	}
	body, err := c.renderers[contentType].RenderBody(ctx, in.Lines[consumed:], pipeline.BodyContext{
		DocID:   strings.TrimSpace(h.RawID),
		Index:   h.IsIndex(),
		Current: current,
	})
	if err != nil {
		return nil, &ConversionError{Path: in.Path, Err: err}
	}

	page, err := c.compositor.Compose(pipeline.Slots{
		pipeline.SlotTitle:      html.EscapeString(h.DocTitle),
		pipeline.SlotDocNum:     h.DocNum(),
		pipeline.SlotStylesheet: c.stylesheet,
		pipeline.SlotHeader:     c.header.Render(h, modTime),
		pipeline.SlotBody:       body,
		pipeline.SlotIndexURL:   c.links.Doc(pipeline.IndexDocID),
		pipeline.SlotHome:       c.cfg.home,
		pipeline.SlotEncoding:   DefaultEncoding,
		pipeline.SlotVersion:    c.cfg.version,
	})
	if err != nil {
		return nil, &ConversionError{Path: in.Path, Err: fmt.Errorf("%w: %w", ErrTemplateUnavailable, err)}
	}

	c.logger.Debug("converted",
		zap.String("path", in.Path),
		zap.String("contentType", contentType),
		zap.Int("doc", h.ID),
		zap.Duration("took", time.Since(start)),
	)

	return &Result{
		HTML:        page,
		DocID:       h.ID,
		DocNum:      h.DocNum(),
		Title:       h.DocTitle,
		ContentType: contentType,
	}, nil
}

// ConvertFile reads path and converts it. The file modification time
// supplies an empty revision date.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided input path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConversionError{Path: path, Err: ErrMissingSource}
		}
		return nil, &ConversionError{Path: path, Err: err}
	}
	// Images and archives named like sources are not documents.
	if kind, _ := filetype.Match(data); kind != filetype.Unknown {
		return nil, &ConversionError{Path: path, Err: fmt.Errorf("%w: %s content", ErrNotDocument, kind.MIME.Value)}
	}
	in := Input{Path: path, Lines: pipeline.SplitLines(string(data))}
	if info, err := os.Stat(path); err == nil {
		in.ModTime = info.ModTime()
	}
	return c.Convert(ctx, in)
}

// crossRefFields hold document numbers.
var crossRefFields = []string{"replaces", "replaced-by", "requires"}

// warnFields logs header values that render as plain text instead of links.
func (c *Converter) warnFields(path string, h *pipeline.Header) {
	if h.Title == "" {
		c.logger.Warn("document has no title", zap.String("path", path))
	}
	for _, name := range crossRefFields {
		value, ok := h.Get(name)
		if !ok {
			continue
		}
		for _, tok := range strings.FieldsFunc(value, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		}) {
			if _, err := strconv.Atoi(tok); err != nil {
				c.logger.Warn("cross reference is not a document number",
					zap.String("path", path),
					zap.String("field", name),
					zap.String("value", tok),
				)
			}
		}
	}
}
