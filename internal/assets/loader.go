package assets

// Default asset names.
const (
	DefaultTemplateName = "rep"
	DefaultStyleName    = "rep"
)

// AssetLoader loads page templates and stylesheets by name.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css content or ErrStyleNotFound.
	LoadStyle(name string) (string, error)
	// LoadTemplate returns templates/{name}.html content or ErrTemplateNotFound.
	LoadTemplate(name string) (string, error)
}

// Page is a template and stylesheet pair used to render documents.
type Page struct {
	Template string
	Style    string
}

// LoadPage loads a template and a stylesheet from loader. Empty names select
// the defaults.
func LoadPage(loader AssetLoader, templateName, styleName string) (*Page, error) {
	if templateName == "" {
		templateName = DefaultTemplateName
	}
	if styleName == "" {
		styleName = DefaultStyleName
	}
	tmpl, err := loader.LoadTemplate(templateName)
	if err != nil {
		return nil, err
	}
	style, err := loader.LoadStyle(styleName)
	if err != nil {
		return nil, err
	}
	return &Page{Template: tmpl, Style: style}, nil
}
