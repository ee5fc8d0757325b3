// Package assemble joins transformed module declarations into the final
// bundle text and splices it into the external template.
package assemble

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jspack/jspack/internal/config"
	"github.com/jspack/jspack/internal/ctxlog"
	"github.com/jspack/jspack/internal/depgraph"
	"github.com/jspack/jspack/internal/jsparse"
	"github.com/jspack/jspack/internal/naming"
	"github.com/jspack/jspack/internal/transform"
)

// Assembler drives the full pipeline for one bundle: graph construction,
// ordering, per-module transformation, and template splicing.
type Assembler struct {
	parser *jsparse.Parser
	layout *config.Layout
}

// New returns an Assembler sharing the given parser cache.
func New(parser *jsparse.Parser, layout *config.Layout) *Assembler {
	return &Assembler{parser: parser, layout: layout}
}

// Build bundles the requested files. Filenames are mapped to identifiers
// and sorted lexicographically; that sorted set is the externally visible
// root set, and only those identifiers appear in the aggregate object —
// transitive dependencies are declared but not exported.
func (a *Assembler) Build(ctx context.Context, filenames []string) (string, error) {
	logger := ctxlog.FromContext(ctx)

	roots := make([]string, len(filenames))
	for i, name := range filenames {
		roots[i] = naming.IdentifierFor(name)
	}
	sort.Strings(roots)

	extractor := depgraph.NewExtractor(a.parser, a.layout)
	graph, err := depgraph.BuildGraph(ctx, extractor, roots)
	if err != nil {
		return "", err
	}
	ordered, err := depgraph.Order(graph)
	if err != nil {
		return "", err
	}
	logger.Debug("Modules ordered.", "requested", len(roots), "bundled", len(ordered))

	declarations := make([]string, 0, len(ordered))
	for _, id := range ordered {
		src, err := transform.ModifiedSource(ctx, a.parser, a.layout, id)
		if err != nil {
			return "", err
		}
		declarations = append(declarations, src)
	}

	body := strings.Join(declarations, "\n\n") + "\n\n" + a.aggregate(roots)
	return a.splice(indent(body, a.layout.Indent))
}

// aggregate renders the exported object literal, one `id: id` entry per
// originally requested identifier.
func (a *Assembler) aggregate(roots []string) string {
	entries := make([]string, len(roots))
	for i, id := range roots {
		entries[i] = fmt.Sprintf("%s%s: %s", a.layout.Indent, id, id)
	}
	return fmt.Sprintf("var %s = {\n%s\n};", a.layout.BundleVar, strings.Join(entries, ",\n"))
}

// splice replaces the first marker occurrence in the template with the
// generated text.
func (a *Assembler) splice(text string) (string, error) {
	template, err := os.ReadFile(a.layout.TemplatePath)
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}
	marker := fmt.Sprintf("/* global %s */", a.layout.BundleVar)
	if !strings.Contains(string(template), marker) {
		return "", fmt.Errorf("template %s does not contain marker %q", a.layout.TemplatePath, marker)
	}
	return strings.Replace(string(template), marker, text, 1), nil
}

// indent shifts every line one nesting level to the right, except the
// synthesized final blank line.
func indent(text, unit string) string {
	lines := strings.Split(text+"\n", "\n")
	for i := range lines[:len(lines)-1] {
		lines[i] = unit + lines[i]
	}
	return strings.Join(lines, "\n")
}
