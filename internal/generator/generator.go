// Package generator synthesizes the companion declarations of annotated
// configuration aggregates and assembles them into a Go source file.
package generator

import (
	"fmt"
	"go/format"
	"go/token"
	"log/slog"
	"strconv"
	"strings"

	"github.com/origadmin/confgen/internal/extract"
	"github.com/origadmin/confgen/internal/model"
	"github.com/origadmin/confgen/internal/template"
)

// DefaultRuntimePath is the import path of the configuration source package
// that generated code depends on.
const DefaultRuntimePath = "github.com/origadmin/confgen/confsource"

const (
	runtimeName  = "confsource"
	rootHandle   = "src"
	scopedHandle = "scoped"
)

// Options configures a Generator.
type Options struct {
	// RuntimePath overrides DefaultRuntimePath.
	RuntimePath string
}

// Generator renders declarations for config and group aggregates.
type Generator struct {
	runtimeImport string
	runtime       string
	tmplMgr       template.Renderer
}

// NewGenerator creates a new Generator.
//
// A runtime package other than DefaultRuntimePath is imported under an
// explicit name, so generated code does not depend on its package clause.
func NewGenerator(opts Options) *Generator {
	runtimeImport, runtime := strconv.Quote(DefaultRuntimePath), runtimeName
	if path := opts.RuntimePath; path != "" && path != DefaultRuntimePath {
		if name := extract.ImportName(path); token.IsIdentifier(name) {
			runtime = name
		}
		runtimeImport = runtime + " " + strconv.Quote(path)
	}
	return &Generator{
		runtimeImport: runtimeImport,
		runtime:       runtime,
		tmplMgr:       template.NewManager(),
	}
}

// Config synthesizes the key table, default table, initializer and
// conformance declarations of a config aggregate. An aggregate without
// properties only gets the conformance declaration.
func (g *Generator) Config(agg *model.Aggregate) (*model.Expansion, error) {
	data := g.declData(agg)
	exp := g.newExpansion(agg)
	if len(agg.Properties) == 0 {
		slog.Debug("Aggregate has no configurable properties", "type", agg.Name)
		data.Empty = true
		if err := g.emit(exp, model.DeclConformance, "_", template.Conformance, data); err != nil {
			return nil, err
		}
		return exp, nil
	}

	steps := []struct {
		kind model.DeclKind
		name string
		tmpl string
	}{
		{model.DeclKeys, data.KeysVar, template.Keys},
		{model.DeclDefaults, data.DefaultsVar, template.Defaults},
		{model.DeclInitializer, "LoadConfig", template.Initializer},
		{model.DeclConformance, "_", template.Conformance},
	}
	for _, s := range steps {
		if err := g.emit(exp, s.kind, s.name, s.tmpl, data); err != nil {
			return nil, err
		}
	}
	return exp, nil
}

// Group synthesizes the forwarding initializer, the environment-backed
// factory and the conformance declaration of a group aggregate. A group
// without nested fields only gets the conformance declaration.
func (g *Generator) Group(agg *model.Aggregate) (*model.Expansion, error) {
	data := g.declData(agg)
	exp := g.newExpansion(agg)
	if len(agg.Nested) == 0 {
		slog.Debug("Group has no nested configurations", "type", agg.Name)
		data.Empty = true
		if err := g.emit(exp, model.DeclConformance, "_", template.Conformance, data); err != nil {
			return nil, err
		}
		return exp, nil
	}

	steps := []struct {
		kind model.DeclKind
		name string
		tmpl string
	}{
		{model.DeclInitializer, "LoadConfig", template.Group},
		{model.DeclFactory, data.FactoryName, template.Factory},
		{model.DeclConformance, "_", template.Conformance},
	}
	for _, s := range steps {
		if err := g.emit(exp, s.kind, s.name, s.tmpl, data); err != nil {
			return nil, err
		}
	}
	return exp, nil
}

func (g *Generator) declData(agg *model.Aggregate) template.Decl {
	handle := rootHandle
	if agg.Scoped() {
		handle = scopedHandle
	}
	base := LowerCamel(agg.Name)
	return template.Decl{
		TypeName:    agg.Name,
		Runtime:     g.runtime,
		Scope:       agg.Scope,
		Handle:      handle,
		KeysVar:     base + "Keys",
		DefaultsVar: base + "Defaults",
		FactoryName: "Load" + agg.Name,
		Properties:  agg.Properties,
		Nested:      agg.Nested,
	}
}

func (g *Generator) newExpansion(agg *model.Aggregate) *model.Expansion {
	imports := append([]string{g.runtimeImport}, agg.Imports...)
	return &model.Expansion{TypeName: agg.Name, Imports: imports}
}

func (g *Generator) emit(exp *model.Expansion, kind model.DeclKind, name, tmpl string, data template.Decl) error {
	raw, err := g.tmplMgr.Render(tmpl, data)
	if err != nil {
		return fmt.Errorf("%s %s: %w", exp.TypeName, kind, err)
	}
	formatted, err := format.Source(raw)
	if err != nil {
		return fmt.Errorf("%s %s: format generated code: %w\n%s", exp.TypeName, kind, err, raw)
	}
	exp.Declarations = append(exp.Declarations, model.Declaration{
		Kind:   kind,
		Name:   name,
		Source: strings.TrimSpace(string(formatted)),
	})
	return nil
}
