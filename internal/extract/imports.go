package extract

import (
	goast "go/ast"
	"go/parser"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/origadmin/confgen/internal/model"
)

var versionSuffix = regexp.MustCompile(`^v[0-9]+$`)

// Qualifiers returns the package qualifiers referenced by the aggregate's
// declared types, defaults and nested types, sorted.
func Qualifiers(agg *model.Aggregate) []string {
	seen := make(map[string]bool)
	collect := func(src string) {
		expr, err := parser.ParseExpr(src)
		if err != nil {
			return
		}
		goast.Inspect(expr, func(n goast.Node) bool {
			if sel, ok := n.(*goast.SelectorExpr); ok {
				if ident, ok := sel.X.(*goast.Ident); ok {
					seen[ident.Name] = true
				}
			}
			return true
		})
	}
	for _, p := range agg.Properties {
		collect(p.DeclaredType)
		collect(p.DefaultLiteral)
	}
	for _, n := range agg.Nested {
		collect(n.TypeName)
	}

	qualifiers := make([]string, 0, len(seen))
	for q := range seen {
		qualifiers = append(qualifiers, q)
	}
	sort.Strings(qualifiers)
	return qualifiers
}

// ResolveImports maps qualifiers onto the imports of file and returns them as
// import specs. Qualifiers matching no import are dropped.
func ResolveImports(file *goast.File, qualifiers []string) []string {
	if file == nil || len(qualifiers) == 0 {
		return nil
	}

	byName := importPaths(file)
	var specs []string
	for _, q := range qualifiers {
		importPath, ok := byName[q]
		if !ok {
			continue
		}
		if ImportName(importPath) == q {
			specs = append(specs, strconv.Quote(importPath))
		} else {
			specs = append(specs, q+" "+strconv.Quote(importPath))
		}
	}
	return specs
}

// importPaths maps the names file refers to its imports by onto their paths.
// Blank and dot imports are left out.
func importPaths(file *goast.File) map[string]string {
	byName := make(map[string]string)
	if file == nil {
		return byName
	}
	for _, imp := range file.Imports {
		importPath, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		name := ImportName(importPath)
		if imp.Name != nil {
			name = imp.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		byName[name] = importPath
	}
	return byName
}

// ImportName guesses the package name of importPath from its last element,
// skipping major version suffixes and gopkg.in style ".vN" endings.
func ImportName(importPath string) string {
	base := path.Base(importPath)
	if versionSuffix.MatchString(base) {
		if dir := path.Dir(importPath); dir != "." {
			base = path.Base(dir)
		}
	}
	if i := strings.LastIndex(base, ".v"); i > 0 && versionSuffix.MatchString(base[i+1:]) {
		base = base[:i]
	}
	return strings.ReplaceAll(base, "-", "_")
}
