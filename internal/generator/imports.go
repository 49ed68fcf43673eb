package generator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/origadmin/confgen/internal/extract"
)

// ImportSet merges the import specs of several expansions into one import
// block. Each name may be bound to a single path.
type ImportSet struct {
	byName map[string]string
	specs  map[string]bool
}

// NewImportSet creates an empty ImportSet.
func NewImportSet() *ImportSet {
	return &ImportSet{
		byName: make(map[string]string),
		specs:  make(map[string]bool),
	}
}

// Add merges specs, written as in an import block, e.g. `"log/slog"` or
// `geo "example.com/app/regions"`. When one of them binds a name that is
// already bound to another path nothing is added and an error is returned.
func (s *ImportSet) Add(specs ...string) error {
	pending := make(map[string]string, len(specs))
	for _, spec := range specs {
		name, path := splitImportSpec(spec)
		if prev, ok := s.byName[name]; ok && prev != path {
			return fmt.Errorf("import name %s refers to both %q and %q", name, prev, path)
		}
		if prev, ok := pending[name]; ok && prev != path {
			return fmt.Errorf("import name %s refers to both %q and %q", name, prev, path)
		}
		pending[name] = path
	}
	for _, spec := range specs {
		name, path := splitImportSpec(spec)
		s.byName[name] = path
		s.specs[spec] = true
	}
	return nil
}

// Specs returns the merged specs, sorted.
func (s *ImportSet) Specs() []string {
	specs := make([]string, 0, len(s.specs))
	for spec := range s.specs {
		specs = append(specs, spec)
	}
	sort.Strings(specs)
	return specs
}

// splitImportSpec returns the name an import spec binds and its path.
func splitImportSpec(spec string) (name, path string) {
	name, quoted, aliased := strings.Cut(spec, " ")
	if !aliased {
		name, quoted = "", spec
	}
	path, err := strconv.Unquote(quoted)
	if err != nil {
		path = quoted
	}
	if name == "" {
		name = extract.ImportName(path)
	}
	return name, path
}
