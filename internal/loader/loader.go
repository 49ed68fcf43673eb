// Package loader reads the syntax of the package confgen runs on and writes
// the generated file next to it.
package loader

import (
	"context"
	"errors"
	"fmt"
	goast "go/ast"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"
)

const filePerm = 0o644

// ErrNoPackage is returned when a directory holds no Go package.
var ErrNoPackage = errors.New("no Go package found")

// Package is the parsed syntax of one Go package.
type Package struct {
	Name  string
	Dir   string
	Fset  *token.FileSet
	Files []*goast.File
}

// Load parses the package in dir. Only syntax is loaded: the generated file
// may be missing or stale, so the package need not type-check.
func Load(ctx context.Context, dir string) (*Package, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		Dir:     absDir,
		Fset:    fset,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %s: %w", absDir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPackage, absDir)
	}

	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		errs := make([]error, 0, len(pkg.Errors))
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
		if len(pkg.Syntax) == 0 {
			return nil, fmt.Errorf("failed to parse package in %s: %w", absDir, errors.Join(errs...))
		}
		slog.Warn("Package loaded with errors", "dir", absDir, "errors", errors.Join(errs...))
	}
	if pkg.Name == "" || len(pkg.Syntax) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPackage, absDir)
	}

	slog.Debug("Loaded package", "name", pkg.Name, "dir", absDir, "files", len(pkg.Syntax))
	return &Package{
		Name:  pkg.Name,
		Dir:   absDir,
		Fset:  fset,
		Files: pkg.Syntax,
	}, nil
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
