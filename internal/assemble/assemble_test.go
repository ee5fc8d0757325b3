package assemble

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jspack/jspack/internal/config"
	"github.com/jspack/jspack/internal/depgraph"
	"github.com/jspack/jspack/internal/jsparse"
)

const testTemplate = `;(function(global) {

/* global R */
    global.R = R;
}(this));
`

// fixture lays out a source tree plus the bundle template and returns the
// matching layout.
func fixture(t *testing.T, files map[string]string) *config.Layout {
	t.Helper()
	root := t.TempDir()
	for name, src := range files {
		path := filepath.Join(root, "src", name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	}
	templatePath := filepath.Join(root, "template.js")
	require.NoError(t, os.WriteFile(templatePath, []byte(testTemplate), 0o600))

	layout := config.Default()
	layout.SourceDir = filepath.Join(root, "src")
	layout.TemplatePath = templatePath
	return layout
}

func newAssembler(layout *config.Layout) *Assembler {
	return New(jsparse.NewParser(), layout)
}

func TestBuild(t *testing.T) {
	layout := fixture(t, map[string]string{
		"a.js": "// adds two numbers\nmodule.exports = function add(x, y) {\n    return x + y;\n};\n",
		"b.js": "var a = require('./a');\nmodule.exports = function double(x) {\n    return a(x, x);\n};\n",
		"c.js": "var a = require('./a');\nvar b = require('./b');\nmodule.exports = function quadruple(x) {\n    return a(b(x), b(x));\n};\n",
	})

	out, err := newAssembler(layout).Build(context.Background(), []string{"c.js"})
	require.NoError(t, err)

	want := strings.Join([]string{
		";(function(global) {",
		"",
		"    // adds two numbers",
		"    var a = function add(x, y) {",
		"        return x + y;",
		"    };",
		"    ",
		"    var b = function double(x) {",
		"        return a(x, x);",
		"    };",
		"    ",
		"    var c = function quadruple(x) {",
		"        return a(b(x), b(x));",
		"    };",
		"    ",
		"    var R = {",
		"        c: c",
		"    };",
		"",
		"    global.R = R;",
		"}(this));",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestBuildAggregateHoldsOnlyRequestedModules(t *testing.T) {
	layout := fixture(t, map[string]string{
		"a.js": "module.exports = 1;\n",
		"b.js": "var a = require('./a');\nmodule.exports = a;\n",
		"c.js": "var b = require('./b');\nmodule.exports = b;\n",
	})

	out, err := newAssembler(layout).Build(context.Background(), []string{"c.js"})
	require.NoError(t, err)

	// a and b are declared but not exported.
	assert.Contains(t, out, "var a = 1;")
	assert.Contains(t, out, "var R = {\n        c: c\n    };")
	assert.NotContains(t, out, "a: a")
	assert.NotContains(t, out, "b: b")
}

func TestBuildSortsRequestedRoots(t *testing.T) {
	layout := fixture(t, map[string]string{
		"x.js": "module.exports = 1;\n",
		"y.js": "module.exports = 2;\n",
	})

	out, err := newAssembler(layout).Build(context.Background(), []string{"y.js", "x.js"})
	require.NoError(t, err)
	assert.Contains(t, out, "x: x,\n        y: y")
}

func TestBuildHonorsCustomBundleVar(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.js"), []byte("module.exports = 1;\n"), 0o600))
	templatePath := filepath.Join(root, "template.js")
	require.NoError(t, os.WriteFile(templatePath, []byte("/* global lib */\n"), 0o600))

	layout := config.Default()
	layout.SourceDir = filepath.Join(root, "src")
	layout.TemplatePath = templatePath
	layout.BundleVar = "lib"

	out, err := newAssembler(layout).Build(context.Background(), []string{"a.js"})
	require.NoError(t, err)
	assert.Contains(t, out, "var lib = {")
	assert.Contains(t, out, "a: a")
}

func TestBuildMissingMarker(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.js"), []byte("module.exports = 1;\n"), 0o600))
	templatePath := filepath.Join(root, "template.js")
	require.NoError(t, os.WriteFile(templatePath, []byte("// no marker here\n"), 0o600))

	layout := config.Default()
	layout.SourceDir = filepath.Join(root, "src")
	layout.TemplatePath = templatePath

	_, err := newAssembler(layout).Build(context.Background(), []string{"a.js"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marker")
}

func TestBuildPropagatesValidationFailures(t *testing.T) {
	layout := fixture(t, map[string]string{
		"m.js": "var z = require('./z');\nvar a = require('./a');\nmodule.exports = a;\n",
	})

	_, err := newAssembler(layout).Build(context.Background(), []string{"m.js"})

	var unsorted *depgraph.UnsortedImportsError
	require.True(t, errors.As(err, &unsorted))
}
