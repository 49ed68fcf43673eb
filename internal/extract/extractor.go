// Package extract turns an annotated struct declaration into the ordered
// descriptor lists consumed by the synthesizers.
package extract

import (
	"errors"
	"fmt"
	goast "go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"log/slog"
	"strconv"
	"strings"

	"github.com/origadmin/confgen/internal/directive"
	"github.com/origadmin/confgen/internal/model"
)

// ErrRequiresAggregateType is returned for annotated declarations that are not
// struct types.
var ErrRequiresAggregateType = errors.New("annotation requires a struct type")

// SkipReason explains why an eligible field produced no descriptor.
type SkipReason int

const (
	// SkipNotAnnotated marks a field without a value annotation.
	SkipNotAnnotated SkipReason = iota
	// SkipMalformed marks a field whose value annotation could not be used.
	SkipMalformed
)

func (r SkipReason) String() string {
	if r == SkipMalformed {
		return "malformed"
	}
	return "not annotated"
}

// SkippedField records an eligible field left out of generation.
type SkippedField struct {
	Name     string
	Reason   SkipReason
	Err      error
	Position token.Position
}

// Properties is the result of extracting a config aggregate.
type Properties struct {
	Descriptors []model.PropertyDescriptor
	Skipped     []SkippedField
}

// Extractor reads descriptors out of struct type declarations.
type Extractor struct {
	fset    *token.FileSet
	tagName string
}

// NewExtractor creates an Extractor reading the value annotation from the
// struct tag key tagName.
func NewExtractor(fset *token.FileSet, tagName string) *Extractor {
	if tagName == "" {
		tagName = directive.DefaultTagName
	}
	return &Extractor{fset: fset, tagName: tagName}
}

// field is one eligible stored field, after splitting multi-name entries.
type field struct {
	name string
	typ  goast.Expr
	tag  string
	pos  token.Pos
}

// Properties extracts the property descriptors of spec, declared in file, in
// source order. Fields without a usable value annotation are reported in
// Skipped and otherwise ignored. The imports of file decide whether a dotted
// string default names a constant or is plain text; file may be nil.
func (e *Extractor) Properties(spec *goast.TypeSpec, file *goast.File) (*Properties, error) {
	fields, err := e.fields(spec)
	if err != nil {
		return nil, err
	}
	imports := importPaths(file)

	result := &Properties{}
	for _, f := range fields {
		pos := e.fset.Position(f.pos)
		tag, err := directive.ParseFieldTag(f.tag, e.tagName)
		if err != nil {
			reason := SkipMalformed
			if errors.Is(err, directive.ErrNoValueTag) {
				reason = SkipNotAnnotated
			}
			result.Skipped = append(result.Skipped, SkippedField{Name: f.name, Reason: reason, Err: err, Position: pos})
			continue
		}

		desc, err := describe(f.name, types.ExprString(f.typ), tag, imports)
		if err != nil {
			slog.Debug("Skipping field with unusable default", "type", spec.Name.Name, "field", f.name, "error", err)
			result.Skipped = append(result.Skipped, SkippedField{Name: f.name, Reason: SkipMalformed, Err: err, Position: pos})
			continue
		}
		result.Descriptors = append(result.Descriptors, desc)
	}
	return result, nil
}

// NestedFields lists the fields of a group aggregate in source order.
func (e *Extractor) NestedFields(spec *goast.TypeSpec) ([]model.NestedFieldDescriptor, error) {
	fields, err := e.fields(spec)
	if err != nil {
		return nil, err
	}

	nested := make([]model.NestedFieldDescriptor, 0, len(fields))
	for _, f := range fields {
		typ, pointer := f.typ, false
		if star, ok := typ.(*goast.StarExpr); ok {
			typ, pointer = star.X, true
		}
		nested = append(nested, model.NestedFieldDescriptor{
			Name:     f.name,
			TypeName: types.ExprString(typ),
			Pointer:  pointer,
		})
	}
	return nested, nil
}

func (e *Extractor) fields(spec *goast.TypeSpec) ([]field, error) {
	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return nil, fmt.Errorf("%w: %s is generic", ErrRequiresAggregateType, spec.Name.Name)
	}
	st, ok := spec.Type.(*goast.StructType)
	if !ok {
		return nil, fmt.Errorf("%w: %s is %s", ErrRequiresAggregateType, spec.Name.Name, shape(spec.Type))
	}

	var fields []field
	for _, f := range st.Fields.List {
		if _, isFunc := f.Type.(*goast.FuncType); isFunc {
			continue
		}
		tag := ""
		if f.Tag != nil {
			tag = f.Tag.Value
		}
		if len(f.Names) == 0 {
			if name := embeddedName(f.Type); name != "" {
				fields = append(fields, field{name: name, typ: f.Type, tag: tag, pos: f.Type.Pos()})
			}
			continue
		}
		for _, ident := range f.Names {
			if ident.Name == "_" {
				continue
			}
			fields = append(fields, field{name: ident.Name, typ: f.Type, tag: tag, pos: ident.Pos()})
		}
	}
	return fields, nil
}

func embeddedName(expr goast.Expr) string {
	switch t := expr.(type) {
	case *goast.StarExpr:
		return embeddedName(t.X)
	case *goast.Ident:
		return t.Name
	case *goast.SelectorExpr:
		return t.Sel.Name
	case *goast.IndexExpr:
		return embeddedName(t.X)
	case *goast.IndexListExpr:
		return embeddedName(t.X)
	}
	return ""
}

func shape(expr goast.Expr) string {
	switch expr.(type) {
	case *goast.InterfaceType:
		return "an interface"
	case *goast.FuncType:
		return "a function type"
	case *goast.MapType, *goast.ArrayType, *goast.ChanType:
		return "a composite non-struct type"
	}
	return fmt.Sprintf("declared as %s", types.ExprString(expr))
}

// describe classifies a field and renders its default expression. imports
// holds the package names visible to the declaring file.
func describe(name, declared string, tag directive.ValueTag, imports map[string]string) (model.PropertyDescriptor, error) {
	desc := model.PropertyDescriptor{
		Name:         name,
		ConfigKey:    tag.Key,
		DeclaredType: declared,
	}
	def := tag.Default

	// Leading-dot shorthand: .Debug on Level is LevelDebug.
	if member, ok := strings.CutPrefix(def, "."); ok {
		if !token.IsIdentifier(member) {
			return desc, fmt.Errorf("invalid enumerator shorthand %q", def)
		}
		qualified, ok := qualify(declared, member)
		if !ok {
			return desc, fmt.Errorf("enumerator shorthand %q needs a named type, got %s", def, declared)
		}
		desc.Kind, desc.DefaultLiteral = model.KindEnum, qualified
		return desc, nil
	}

	expr, parseErr := parser.ParseExpr(def)
	if parseErr != nil {
		expr = nil
	}
	// pkg.Name refers to a constant. On a string field it only does so when
	// pkg is imported; otherwise text such as app.log is a plain value.
	if sel, ok := expr.(*goast.SelectorExpr); ok {
		if x, ok := sel.X.(*goast.Ident); ok {
			if _, imported := imports[x.Name]; imported || declared != "string" {
				desc.Kind, desc.DefaultLiteral = model.KindEnum, def
				return desc, nil
			}
		}
	}

	switch declared {
	case "string":
		desc.Kind, desc.DefaultLiteral = model.KindString, quote(def, expr)
		return desc, nil
	case "int", "float64", "bool":
		if parseErr != nil {
			return desc, fmt.Errorf("default %q is not a Go expression: %w", def, parseErr)
		}
		desc.Kind, desc.DefaultLiteral = primitiveKinds[declared], def
		return desc, nil
	}

	if ident, ok := expr.(*goast.Ident); ok && !predeclared[ident.Name] {
		desc.Kind, desc.DefaultLiteral = model.KindEnum, def
		return desc, nil
	}

	desc.Kind, desc.DefaultLiteral, desc.Fallback = model.KindString, quote(def, expr), true
	return desc, nil
}

var primitiveKinds = map[string]model.Kind{
	"int":     model.KindInt,
	"float64": model.KindFloat,
	"bool":    model.KindBool,
}

var predeclared = map[string]bool{"true": true, "false": true, "nil": true}

// qualify expands an enumerator shorthand against a named or qualified type.
func qualify(declared, member string) (string, bool) {
	pkg, name, qualified := strings.Cut(declared, ".")
	if !qualified {
		name, pkg = pkg, ""
	}
	if !token.IsIdentifier(name) || (qualified && !token.IsIdentifier(pkg)) {
		return "", false
	}
	if qualified {
		return pkg + "." + name + member, true
	}
	return name + member, true
}

// quote renders def as a Go string literal unless it already is one.
func quote(def string, expr goast.Expr) string {
	if lit, ok := expr.(*goast.BasicLit); ok && lit.Kind == token.STRING {
		return def
	}
	return strconv.Quote(def)
}
