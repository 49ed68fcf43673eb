package expand

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/origadmin/confgen/internal/ast"
	"github.com/origadmin/confgen/internal/diagnostic"
	"github.com/origadmin/confgen/internal/directive"
	"github.com/origadmin/confgen/internal/extract"
	"github.com/origadmin/confgen/internal/generator"
	"github.com/origadmin/confgen/internal/model"
)

// Request is one annotated type declaration handed to a Handler.
type Request struct {
	Target    *ast.Target
	Directive directive.Directive
	Extractor *extract.Extractor
	Generator *generator.Generator
	Strict    bool
}

// Outcome is what a Handler produced for one declaration. Aggregate and
// Expansion are nil when the declaration was rejected.
type Outcome struct {
	Aggregate   *model.Aggregate
	Expansion   *model.Expansion
	Diagnostics diagnostic.Diagnostics
}

// Handler expands one annotated declaration.
type Handler interface {
	Handle(req *Request) *Outcome
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(req *Request) *Outcome

// Handle calls f(req).
func (f HandlerFunc) Handle(req *Request) *Outcome {
	return f(req)
}

// Registry maps directive verbs to handlers.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry returns a registry holding the config and group handlers.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]Handler)}
	r.Register(string(model.AnnotationConfig), HandlerFunc(expandConfig))
	r.Register(string(model.AnnotationGroup), HandlerFunc(expandGroup))
	return r
}

// Register binds verb to h, replacing any previous handler.
func (r *Registry) Register(verb string, h Handler) {
	r.handlers[verb] = h
}

// Lookup returns the handler bound to verb.
func (r *Registry) Lookup(verb string) (Handler, bool) {
	h, ok := r.handlers[verb]
	return h, ok
}

// Verbs lists the registered verbs, sorted.
func (r *Registry) Verbs() []string {
	verbs := make([]string, 0, len(r.handlers))
	for v := range r.handlers {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)
	return verbs
}

func (req *Request) aggregate(kind model.AnnotationKind) *model.Aggregate {
	return &model.Aggregate{
		Name:       req.Target.Name,
		Annotation: kind,
		Scope:      req.Directive.Scope(),
		Position:   req.Target.Position,
	}
}

// reject records err against the declaration.
func (req *Request) reject(out *Outcome, err error) *Outcome {
	code := diagnostic.CodeGenerationFailed
	if errors.Is(err, extract.ErrRequiresAggregateType) {
		code = diagnostic.CodeRequiresAggregateType
	}
	out.Diagnostics.Errorf(req.Target.Position, code, req.Target.Name, "%v", err)
	out.Aggregate, out.Expansion = nil, nil
	return out
}

func expandConfig(req *Request) *Outcome {
	out := &Outcome{}
	props, err := req.Extractor.Properties(req.Target.Spec, req.Target.File)
	if err != nil {
		return req.reject(out, err)
	}

	agg := req.aggregate(model.AnnotationConfig)
	agg.Properties = props.Descriptors
	for _, skipped := range props.Skipped {
		if skipped.Reason != extract.SkipMalformed {
			continue
		}
		if !req.Strict {
			slog.Debug("Omitting field with malformed value annotation", "type", agg.Name, "field", skipped.Name, "error", skipped.Err)
			continue
		}
		out.Diagnostics.Add(diagnostic.Diagnostic{
			Severity: diagnostic.SeverityError,
			Code:     diagnostic.CodeMalformedValueAnnotation,
			Message:  skipped.Err.Error(),
			TypeName: agg.Name,
			Field:    skipped.Name,
			Position: skipped.Position,
		})
	}
	if req.Strict {
		for _, p := range agg.Properties {
			if p.Fallback {
				out.Diagnostics.Add(diagnostic.Diagnostic{
					Severity: diagnostic.SeverityWarning,
					Code:     diagnostic.CodeUnsupportedType,
					Message:  fmt.Sprintf("type %s is not a supported primitive or enumeration; reading it as a string", p.DeclaredType),
					TypeName: agg.Name,
					Field:    p.Name,
					Position: req.Target.Position,
				})
			}
		}
	}
	if out.Diagnostics.HasErrors() {
		return out
	}

	agg.Imports = extract.ResolveImports(req.Target.File, extract.Qualifiers(agg))
	exp, err := req.Generator.Config(agg)
	if err != nil {
		return req.reject(out, err)
	}
	out.Aggregate, out.Expansion = agg, exp
	return out
}

func expandGroup(req *Request) *Outcome {
	out := &Outcome{}
	nested, err := req.Extractor.NestedFields(req.Target.Spec)
	if err != nil {
		return req.reject(out, err)
	}

	agg := req.aggregate(model.AnnotationGroup)
	agg.Nested = nested
	agg.Imports = extract.ResolveImports(req.Target.File, extract.Qualifiers(agg))
	exp, err := req.Generator.Group(agg)
	if err != nil {
		return req.reject(out, err)
	}
	out.Aggregate, out.Expansion = agg, exp
	return out
}
