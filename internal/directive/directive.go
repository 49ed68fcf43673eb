// Package directive parses confgen annotations: the //go:confgen: comment
// directives placed on struct declarations and the struct tag placed on fields.
package directive

import (
	goast "go/ast"
	"regexp"
	"strconv"
	"strings"
)

// Prefix starts every aggregate-level directive.
const Prefix = "//go:confgen:"

// ArgScope is the directive argument carrying the key-prefix scope.
const ArgScope = "scope"

var argRegexp = regexp.MustCompile(`(\w+)\s*=\s*("(?:[^"\\]|\\.)*"|'[^']*'|\S+)`)

// Directive is one parsed //go:confgen: comment line.
type Directive struct {
	Verb string
	Args map[string]string
	// Raw is the original comment text.
	Raw string
}

// Scope returns the scope argument, or "" when absent.
func (d Directive) Scope() string {
	return d.Args[ArgScope]
}

// Parse parses a single comment line. It reports false when the line is not
// a confgen directive.
func Parse(line string) (Directive, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, Prefix) {
		return Directive{}, false
	}
	body := strings.TrimPrefix(line, Prefix)
	verb, rest, _ := strings.Cut(body, " ")
	verb = strings.TrimSpace(verb)
	if verb == "" {
		return Directive{}, false
	}

	d := Directive{
		Verb: verb,
		Args: parseArgs(rest),
		Raw:  line,
	}
	return d, true
}

// parseArgs parses key=value pairs, values optionally quoted.
func parseArgs(s string) map[string]string {
	args := make(map[string]string)
	for _, m := range argRegexp.FindAllStringSubmatch(s, -1) {
		args[m[1]] = unquote(m[2])
	}
	return args
}

func unquote(v string) string {
	switch {
	case strings.HasPrefix(v, `"`):
		if s, err := strconv.Unquote(v); err == nil {
			return s
		}
		return strings.Trim(v, `"`)
	case strings.HasPrefix(v, "'") && strings.HasSuffix(v, "'") && len(v) >= 2:
		return v[1 : len(v)-1]
	}
	return v
}

// FromComments returns every directive found in a comment group, in order.
func FromComments(groups ...*goast.CommentGroup) []Directive {
	var out []Directive
	for _, cg := range groups {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			if d, ok := Parse(c.Text); ok {
				out = append(out, d)
			}
		}
	}
	return out
}
