// Package assets loads page templates and stylesheets.
//
// # Loaders
//
//	AssetLoader (interface)
//	    ├── EmbeddedLoader    built-in "rep" template and style (go:embed)
//	    ├── FilesystemLoader  user directory on disk
//	    └── AssetResolver     user directory first, embedded fallback
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// Asset names are plain file stems. Names with separators or dots are
// rejected and FilesystemLoader keeps every resolved path inside basePath,
// following symlinks.
package assets
