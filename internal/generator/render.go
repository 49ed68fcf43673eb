package generator

import (
	"fmt"
	"go/format"

	"github.com/origadmin/confgen/internal/model"
	"github.com/origadmin/confgen/internal/template"
)

// Header is the first line of every generated file.
const Header = "// Code generated by confgen. DO NOT EDIT."

// FileName returns the name of the generated file for package pkg.
func FileName(pkg string) string {
	return pkg + "_confgen.go"
}

// RenderFile assembles the expansions, in order, into one formatted source
// file of package pkg. It returns nil when there is nothing to emit.
func (g *Generator) RenderFile(pkg string, expansions []*model.Expansion) ([]byte, error) {
	if len(expansions) == 0 {
		return nil, nil
	}

	data := template.FileData{Package: pkg}
	imports := NewImportSet()
	for _, exp := range expansions {
		if err := imports.Add(exp.Imports...); err != nil {
			return nil, fmt.Errorf("%s: %w", exp.TypeName, err)
		}
		for _, decl := range exp.Declarations {
			data.Declarations = append(data.Declarations, decl.Source)
		}
	}
	data.Imports = imports.Specs()

	raw, err := g.tmplMgr.Render(template.File, data)
	if err != nil {
		return nil, err
	}
	out, err := format.Source(raw)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", FileName(pkg), err)
	}
	return out, nil
}
