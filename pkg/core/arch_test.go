package core_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sourceImports returns the imports of every non-test Go file in pkg/core,
// keyed by file name.
func sourceImports(t *testing.T) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()

	entries, err := os.ReadDir(".")
	require.NoError(t, err)

	out := make(map[string][]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(".", name), nil, parser.ImportsOnly)
		require.NoError(t, err, name)
		for _, imp := range f.Imports {
			out[name] = append(out[name], strings.Trim(imp.Path.Value, `"`))
		}
	}
	return out
}

// TestCoreImportsStdlibOnly keeps pkg/core free of third-party and
// project packages, so every layer can depend on it.
func TestCoreImportsStdlibOnly(t *testing.T) {
	files := sourceImports(t)
	require.NotEmpty(t, files)

	for name, imports := range files {
		for _, imp := range imports {
			first, _, _ := strings.Cut(imp, "/")
			assert.NotContains(t, first, ".", "%s imports non-stdlib package %s", name, imp)
		}
	}
}
