package config

import "context"

// Layout describes the fixed layout of the source tree being bundled and
// the shape of the emitted bundle. Given a Layout, the mapping from module
// identifier to file path is a pure, total function.
type Layout struct {
	// SourceDir is the directory holding public module files.
	SourceDir string

	// InternalDir is the name of the subdirectory of SourceDir holding
	// internal modules. It is also the literal path prefix stripped when
	// deriving an expected binding name from a require path.
	InternalDir string

	// InternalPrefix marks an identifier as internal; identifiers carrying
	// it resolve to files under SourceDir/InternalDir.
	InternalPrefix string

	// TemplatePath is the file containing the bundle template. Its first
	// `/* global <BundleVar> */` marker is replaced with the generated code.
	TemplatePath string

	// BundleVar is the name of the aggregate object the bundle exposes.
	BundleVar string

	// Indent is one nesting level of indentation in the emitted bundle.
	Indent string
}

// Default returns the layout the bundler assumes when no configuration
// file is present.
func Default() *Layout {
	return &Layout{
		SourceDir:      "src",
		InternalDir:    "internal",
		InternalPrefix: "_",
		TemplatePath:   "template.js",
		BundleVar:      "R",
		Indent:         "    ",
	}
}

// Loader is the interface for a format-specific layout loader.
type Loader interface {
	// Load reads the layout from the given path. A missing file is not an
	// error: defaults are returned so the tool works in unconfigured trees.
	Load(ctx context.Context, path string) (*Layout, error)
}
