// Package jsparse wraps tree-sitter's JavaScript grammar behind a parser
// with a per-path memoized cache. Parsing a path twice returns the identical
// *File, so every later pipeline stage sees the same tree and the same
// comment list for a given source file.
package jsparse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// ParseError reports syntactically invalid JavaScript source. It is
// unrecoverable and aborts the whole build.
type ParseError struct {
	Path string
	Line int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: invalid JavaScript source", e.Path, e.Line)
}

// Comment is one source comment with its byte range and starting row.
type Comment struct {
	Text      string
	StartByte uint32
	EndByte   uint32
	Row       uint32
}

// File is the parse result for one source file: the source bytes, the
// concrete syntax tree, and a sidecar list of every comment in source
// order. The token stream is the tree's leaf nodes and is not duplicated.
type File struct {
	Path     string
	Source   []byte
	Tree     *sitter.Tree
	Comments []Comment
}

// Root returns the tree's root node.
func (f *File) Root() *sitter.Node {
	return f.Tree.RootNode()
}

// Text returns the exact source slice covered by a node.
func (f *File) Text(n *sitter.Node) string {
	return string(f.Source[n.StartByte():n.EndByte()])
}

// Statements returns the file's top-level statements in source order,
// excluding comments.
func (f *File) Statements() []*sitter.Node {
	root := f.Root()
	var out []*sitter.Node
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		out = append(out, child)
	}
	return out
}

// Parser parses JavaScript files and memoizes the result by absolute path.
// It owns the cache; there is no package-level state. Not safe for
// concurrent use, which the single-threaded pipeline never needs.
type Parser struct {
	inner *sitter.Parser
	cache map[string]*File
}

// NewParser returns a Parser configured for JavaScript.
func NewParser() *Parser {
	inner := sitter.NewParser()
	inner.SetLanguage(javascript.GetLanguage())
	return &Parser{
		inner: inner,
		cache: make(map[string]*File),
	}
}

// Parse reads and parses the file at path. Repeat calls with the same path
// return the identical cached *File.
func (p *Parser) Parse(ctx context.Context, path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if f, ok := p.cache[abs]; ok {
		return f, nil
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading module source: %w", err)
	}
	f, err := p.parse(ctx, abs, src)
	if err != nil {
		return nil, err
	}
	p.cache[abs] = f
	return f, nil
}

func (p *Parser) parse(ctx context.Context, path string, src []byte) (*File, error) {
	tree, err := p.inner.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, &ParseError{Path: path, Line: errorLine(root)}
	}
	f := &File{Path: path, Source: src, Tree: tree}
	collectComments(root, src, &f.Comments)
	return f, nil
}

// collectComments walks the tree depth-first gathering comment nodes in
// source order.
func collectComments(n *sitter.Node, src []byte, out *[]Comment) {
	if n.Type() == "comment" {
		*out = append(*out, Comment{
			Text:      string(src[n.StartByte():n.EndByte()]),
			StartByte: n.StartByte(),
			EndByte:   n.EndByte(),
			Row:       n.StartPoint().Row,
		})
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collectComments(n.Child(i), src, out)
	}
}

// errorLine finds the 1-based line of the first error or missing node.
func errorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if !child.HasError() {
			continue
		}
		if line := errorLine(child); line > 0 {
			return line
		}
	}
	if n.HasError() {
		return int(n.StartPoint().Row) + 1
	}
	return 0
}
