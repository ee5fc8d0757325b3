// Package hclconf implements config.Loader for HCL layout files
// (conventionally jspack.hcl). All fields are optional; anything unset
// falls back to config.Default. Expressions may reference the `cwd`
// variable, which holds the process working directory.
package hclconf

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/jspack/jspack/internal/config"
	"github.com/jspack/jspack/internal/ctxlog"
)

// fileSchema mirrors the attribute surface of a layout file.
type fileSchema struct {
	SourceDir      *string  `hcl:"source_dir,optional"`
	InternalDir    *string  `hcl:"internal_dir,optional"`
	InternalPrefix *string  `hcl:"internal_prefix,optional"`
	Template       *string  `hcl:"template,optional"`
	BundleVar      *string  `hcl:"bundle_var,optional"`
	Indent         *string  `hcl:"indent,optional"`
	Remain         hcl.Body `hcl:",remain"`
}

// Loader reads the bundler layout from an HCL file.
type Loader struct{}

// NewLoader returns a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader. A missing file yields the defaults so the
// tool works in unconfigured trees; a present but invalid file is an error.
func (l *Loader) Load(ctx context.Context, path string) (*config.Layout, error) {
	logger := ctxlog.FromContext(ctx)
	layout := config.Default()

	if path == "" {
		return layout, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No layout file found, using defaults.", "path", path)
			return layout, nil
		}
		return nil, fmt.Errorf("checking layout file: %w", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", path, diags)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cwd": cty.StringVal(cwd),
		},
	}

	var raw fileSchema
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding %s: %w", path, diags)
	}

	apply(&layout.SourceDir, raw.SourceDir)
	apply(&layout.InternalDir, raw.InternalDir)
	apply(&layout.InternalPrefix, raw.InternalPrefix)
	apply(&layout.TemplatePath, raw.Template)
	apply(&layout.BundleVar, raw.BundleVar)
	apply(&layout.Indent, raw.Indent)

	logger.Debug("Layout loaded.", "path", path, "source_dir", layout.SourceDir)
	return layout, nil
}

func apply(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
