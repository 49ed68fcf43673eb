package expand_test

import (
	"context"
	goast "go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/require"

	"github.com/origadmin/confgen/internal/expand"
)

// TestDriver_Golden expands every testdata/<case>/input.go and compares the
// rendered file with testdata/<case>/expected.golden.
func TestDriver_Golden(t *testing.T) {
	dirs, err := os.ReadDir("testdata")
	require.NoError(t, err)

	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}
		casePath := filepath.Join("testdata", dir.Name())
		t.Run(dir.Name(), func(t *testing.T) {
			t.Parallel()

			fset := token.NewFileSet()
			file, err := parser.ParseFile(fset, filepath.Join(casePath, "input.go"), nil, parser.ParseComments)
			require.NoError(t, err)

			driver := expand.NewDriver(fset, expand.Options{})
			res, err := driver.Expand(context.Background(), file.Name.Name, []*goast.File{file})
			require.NoError(t, err)
			require.False(t, res.Diagnostics.HasErrors(), "%v", res.Diagnostics.Err())

			generated, err := driver.Render(res)
			require.NoError(t, err)

			goldenBytes, err := os.ReadFile(filepath.Join(casePath, "expected.golden"))
			require.NoError(t, err)
			golden, err := format.Source(goldenBytes)
			require.NoError(t, err)

			generatedStr := strings.ReplaceAll(string(generated), "\r\n", "\n")
			goldenStr := strings.ReplaceAll(string(golden), "\r\n", "\n")
			if generatedStr != goldenStr {
				dmp := diffmatchpatch.New()
				diffs := dmp.DiffMain(goldenStr, generatedStr, false)
				t.Errorf("Generated code does not match golden file.\n\n%s", dmp.DiffPrettyText(diffs))
			}
		})
	}
}
