// Package expand drives the expansion of every annotated declaration in a
// package: it dispatches each directive to its handler, isolates failures per
// declaration and collects the generated declarations in source order.
package expand

import (
	"context"
	goast "go/ast"
	"go/token"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/origadmin/confgen/internal/ast"
	"github.com/origadmin/confgen/internal/diagnostic"
	"github.com/origadmin/confgen/internal/extract"
	"github.com/origadmin/confgen/internal/generator"
	"github.com/origadmin/confgen/internal/model"
)

// Options configures a Driver.
type Options struct {
	// TagName is the struct tag key of the value annotation.
	TagName string
	// RuntimePath is the import path of the configuration source package.
	RuntimePath string
	// Strict reports malformed value annotations as errors and fallback
	// typed fields as warnings instead of omitting them silently.
	Strict bool
	// Registry overrides the default verb handlers.
	Registry *Registry
	// Concurrency bounds parallel expansion; zero means GOMAXPROCS.
	Concurrency int
}

// Result is the expansion of one package.
type Result struct {
	Package     string
	Aggregates  []*model.Aggregate
	Expansions  []*model.Expansion
	Diagnostics diagnostic.Diagnostics
}

// Driver expands annotated declarations.
type Driver struct {
	fset      *token.FileSet
	opts      Options
	registry  *Registry
	walker    *ast.PackageWalker
	extractor *extract.Extractor
	generator *generator.Generator
}

// NewDriver creates a Driver for files parsed into fset.
func NewDriver(fset *token.FileSet, opts Options) *Driver {
	registry := opts.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.GOMAXPROCS(0)
	}
	return &Driver{
		fset:      fset,
		opts:      opts,
		registry:  registry,
		walker:    ast.NewPackageWalker(fset),
		extractor: extract.NewExtractor(fset, opts.TagName),
		generator: generator.NewGenerator(generator.Options{RuntimePath: opts.RuntimePath}),
	}
}

// Expand expands every annotated declaration found in files. A declaration
// that fails only contributes diagnostics; the others are still expanded.
// The returned error is non-nil only when ctx is cancelled.
func (d *Driver) Expand(ctx context.Context, pkg string, files []*goast.File) (*Result, error) {
	targets := d.walker.Walk(files)
	slog.Debug("Collected annotated declarations", "package", pkg, "count", len(targets))

	outcomes := make([]*Outcome, len(targets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Concurrency)
	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = d.expandTarget(target)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Package: pkg}
	imports := generator.NewImportSet()
	for i, out := range outcomes {
		result.Diagnostics.Merge(out.Diagnostics)
		if out.Expansion == nil {
			continue
		}
		// All expansions share one import block.
		if err := imports.Add(out.Expansion.Imports...); err != nil {
			result.Diagnostics.Errorf(targets[i].Position, diagnostic.CodeGenerationFailed, targets[i].Name, "%v", err)
			continue
		}
		result.Aggregates = append(result.Aggregates, out.Aggregate)
		result.Expansions = append(result.Expansions, out.Expansion)
	}
	return result, nil
}

// Render assembles the expansions of res into the generated file.
func (d *Driver) Render(res *Result) ([]byte, error) {
	return d.generator.RenderFile(res.Package, res.Expansions)
}

func (d *Driver) expandTarget(target *ast.Target) *Outcome {
	out := &Outcome{}
	if !target.IsType() {
		out.Diagnostics.Errorf(target.Position, diagnostic.CodeRequiresAggregateType, target.Name,
			"confgen directives apply to struct type declarations, not %s declarations", target.DeclKind)
		return out
	}
	if len(target.Directives) > 1 {
		verbs := make([]string, 0, len(target.Directives))
		for _, dir := range target.Directives {
			verbs = append(verbs, dir.Verb)
		}
		out.Diagnostics.Errorf(target.Position, diagnostic.CodeConflictingAnnotations, target.Name,
			"at most one confgen directive is allowed, found %v", verbs)
		return out
	}

	dir := target.Directives[0]
	handler, ok := d.registry.Lookup(dir.Verb)
	if !ok {
		out.Diagnostics.Warnf(target.Position, diagnostic.CodeUnknownAnnotation, target.Name,
			"unknown directive %q, known directives are %v", dir.Verb, d.registry.Verbs())
		return out
	}

	slog.Debug("Expanding declaration", "type", target.Name, "directive", dir.Verb, "scope", dir.Scope())
	res := handler.Handle(&Request{
		Target:    target,
		Directive: dir,
		Extractor: d.extractor,
		Generator: d.generator,
		Strict:    d.opts.Strict,
	})
	if res == nil {
		return out
	}
	return res
}
