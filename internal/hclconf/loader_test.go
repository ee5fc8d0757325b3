package hclconf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jspack/jspack/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		layout, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "jspack.hcl"))
		require.NoError(t, err)
		assert.Equal(t, config.Default(), layout)
	})

	t.Run("empty path yields defaults", func(t *testing.T) {
		layout, err := NewLoader().Load(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), layout)
	})

	t.Run("set fields override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jspack.hcl")
		require.NoError(t, os.WriteFile(path, []byte(`
source_dir = "lib/source"
bundle_var = "L"
indent     = "  "
`), 0o600))

		layout, err := NewLoader().Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "lib/source", layout.SourceDir)
		assert.Equal(t, "L", layout.BundleVar)
		assert.Equal(t, "  ", layout.Indent)

		// Unset fields keep their defaults.
		assert.Equal(t, "internal", layout.InternalDir)
		assert.Equal(t, "_", layout.InternalPrefix)
		assert.Equal(t, "template.js", layout.TemplatePath)
	})

	t.Run("expressions may reference cwd", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jspack.hcl")
		require.NoError(t, os.WriteFile(path, []byte(`
template = "${cwd}/template.js"
`), 0o600))

		layout, err := NewLoader().Load(context.Background(), path)
		require.NoError(t, err)

		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, cwd+"/template.js", layout.TemplatePath)
	})

	t.Run("invalid syntax is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "jspack.hcl")
		require.NoError(t, os.WriteFile(path, []byte("source_dir = \n"), 0o600))

		_, err := NewLoader().Load(context.Background(), path)
		assert.Error(t, err)
	})
}
