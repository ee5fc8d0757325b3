// Package naming implements the pure string transforms between module
// identifiers, file paths, and require paths. The derived-name transform is
// the most detail-sensitive rule in the bundler and is kept in one place.
package naming

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jspack/jspack/internal/config"
)

// relPrefix matches a leading run of one or two "./" or "../" segments.
var relPrefix = regexp.MustCompile(`^(\.\.?/){1,2}`)

// dotLetter matches a dot immediately followed by a letter.
var dotLetter = regexp.MustCompile(`\.([a-zA-Z])`)

// IdentifierFor returns the canonical module identifier for a source file:
// its base name without the extension.
func IdentifierFor(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileFor resolves a module identifier to its source file path. Identifiers
// carrying the internal prefix live under the internal subdirectory.
func FileFor(l *config.Layout, id string) string {
	if strings.HasPrefix(id, l.InternalPrefix) {
		return filepath.Join(l.SourceDir, l.InternalDir, id+".js")
	}
	return filepath.Join(l.SourceDir, id+".js")
}

// DerivedName computes the binding name a module must use for a dependency
// it requires at the given path: the literal internal-directory prefix is
// stripped (an internal dependency's nominal path collapses to its bare
// identifier), then any remaining one- or two-segment relative prefix, and
// finally every dot-plus-letter sequence is camel-cased, so a path
// component "foo.bar" yields "fooBar".
func DerivedName(l *config.Layout, requirePath string) string {
	name := strings.Replace(requirePath, l.InternalDir+"/", "", 1)
	name = relPrefix.ReplaceAllString(name, "")
	return dotLetter.ReplaceAllStringFunc(name, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}
