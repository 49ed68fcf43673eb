// Package ast walks package syntax and collects the declarations carrying
// confgen directives.
package ast

import (
	goast "go/ast"
	"go/token"
	"log/slog"

	"github.com/origadmin/confgen/internal/directive"
)

// Target is a declaration carrying at least one confgen directive.
type Target struct {
	// Name is the declared identifier.
	Name       string
	Directives []directive.Directive
	// Spec is the annotated type declaration; nil when the directives were
	// attached to a function, variable or constant.
	Spec *goast.TypeSpec
	// DeclKind is "type", "func", "var" or "const".
	DeclKind string
	// File is the file holding the declaration.
	File     *goast.File
	Position token.Position
}

// IsType reports whether the directives were attached to a type declaration.
func (t *Target) IsType() bool {
	return t.Spec != nil
}

// PackageWalker walks the files of a package and collects annotated targets.
type PackageWalker struct {
	fset *token.FileSet
}

// NewPackageWalker creates a new PackageWalker using fset for positions.
func NewPackageWalker(fset *token.FileSet) *PackageWalker {
	return &PackageWalker{fset: fset}
}

// Walk returns the annotated targets of files in source order.
// Files marked as generated are skipped.
func (w *PackageWalker) Walk(files []*goast.File) []*Target {
	var targets []*Target
	for _, file := range files {
		if goast.IsGenerated(file) {
			slog.Debug("Skipping generated file", "file", w.fset.Position(file.Pos()).Filename)
			continue
		}
		for _, target := range w.walkFile(file) {
			target.File = file
			targets = append(targets, target)
		}
	}
	return targets
}

func (w *PackageWalker) walkFile(file *goast.File) []*Target {
	var targets []*Target
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *goast.GenDecl:
			targets = append(targets, w.walkGenDecl(d)...)
		case *goast.FuncDecl:
			if dirs := directive.FromComments(d.Doc); len(dirs) > 0 {
				targets = append(targets, &Target{
					Name:       d.Name.Name,
					Directives: dirs,
					DeclKind:   "func",
					Position:   w.fset.Position(d.Name.Pos()),
				})
			}
		}
	}
	return targets
}

func (w *PackageWalker) walkGenDecl(d *goast.GenDecl) []*Target {
	var targets []*Target
	switch d.Tok {
	case token.TYPE:
		for _, spec := range d.Specs {
			typeSpec, ok := spec.(*goast.TypeSpec)
			if !ok {
				continue
			}
			groups := []*goast.CommentGroup{typeSpec.Doc}
			// An unparenthesized declaration keeps its doc comment on the GenDecl.
			if !d.Lparen.IsValid() {
				groups = append([]*goast.CommentGroup{d.Doc}, groups...)
			}
			dirs := directive.FromComments(groups...)
			if len(dirs) == 0 {
				continue
			}
			slog.Debug("Found annotated type", "type", typeSpec.Name.Name, "directives", len(dirs))
			targets = append(targets, &Target{
				Name:       typeSpec.Name.Name,
				Directives: dirs,
				Spec:       typeSpec,
				DeclKind:   "type",
				Position:   w.fset.Position(typeSpec.Name.Pos()),
			})
		}
	case token.VAR, token.CONST:
		dirs := directive.FromComments(d.Doc)
		if len(dirs) == 0 {
			return nil
		}
		name := ""
		if len(d.Specs) > 0 {
			if vs, ok := d.Specs[0].(*goast.ValueSpec); ok && len(vs.Names) > 0 {
				name = vs.Names[0].Name
			}
		}
		targets = append(targets, &Target{
			Name:       name,
			Directives: dirs,
			DeclKind:   d.Tok.String(),
			Position:   w.fset.Position(d.Pos()),
		})
	}
	return targets
}
