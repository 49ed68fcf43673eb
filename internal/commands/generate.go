package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/origadmin/confgen/internal/config"
	"github.com/origadmin/confgen/internal/diagnostic"
	"github.com/origadmin/confgen/internal/expand"
	"github.com/origadmin/confgen/internal/generator"
	"github.com/origadmin/confgen/internal/loader"
	"github.com/origadmin/confgen/internal/model"
	"github.com/origadmin/confgen/internal/output"
)

func newGenerateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Generate configuration loaders for the package in dir",
		Long: `Expands every annotated struct of the package in dir (default ".") and writes
the result to <package>_confgen.go in the package directory.

Declarations that fail are reported and skipped; the others are still
written. The exit status is 1 when any error was reported.

Example:
  confgen generate
  confgen generate ./internal/settings --strict
  confgen generate --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), v, dirArg(args))
		},
	}
	cmd.Flags().StringP(config.KeyOutput, "o", "", "Output file, relative to the package directory (default <package>_confgen.go)")
	cmd.Flags().Bool(config.KeyDryRun, false, "Print the generated file instead of writing it")
	addExpandFlags(cmd)
	return cmd
}

func runGenerate(ctx context.Context, v *viper.Viper, dir string) error {
	s, err := loadSettings(v, dir)
	if err != nil {
		return err
	}
	pkg, res, driver, err := expandPackage(ctx, s, dir)
	if err != nil {
		return err
	}
	report(&res.Diagnostics)

	src, err := driver.Render(res)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", pkg.Name, err)
	}
	if src == nil {
		output.Info(fmt.Sprintf("No annotated declarations in package %s", pkg.Name))
		return diagnosticsErr(&res.Diagnostics)
	}

	if s.DryRun {
		output.Raw(src)
		return diagnosticsErr(&res.Diagnostics)
	}

	target := s.Output
	if target == "" {
		target = generator.FileName(pkg.Name)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(pkg.Dir, target)
	}
	slog.Info("Writing generated code", "file", target)
	if err := loader.WriteFile(target, src); err != nil {
		return err
	}
	output.Success(fmt.Sprintf("Wrote %s (%d types)", target, len(res.Expansions)))
	for i, agg := range res.Aggregates {
		output.Step(summary(agg, res.Expansions[i]))
	}
	return diagnosticsErr(&res.Diagnostics)
}

// summary describes what was generated for agg.
func summary(agg *model.Aggregate, exp *model.Expansion) string {
	if agg.Annotation == model.AnnotationGroup {
		line := fmt.Sprintf("%s: group of %d", agg.Name, len(agg.Nested))
		if factory, ok := exp.Find(model.DeclFactory); ok {
			line += ", " + factory.Name + "()"
		}
		return line
	}
	return fmt.Sprintf("%s: %d properties", agg.Name, len(agg.Properties))
}

func expandPackage(ctx context.Context, s *config.Settings, dir string) (*loader.Package, *expand.Result, *expand.Driver, error) {
	pkg, err := loader.Load(ctx, dir)
	if err != nil {
		return nil, nil, nil, err
	}
	output.Verbose(fmt.Sprintf("Package %s in %s (%d files)", pkg.Name, pkg.Dir, len(pkg.Files)))
	driver := expand.NewDriver(pkg.Fset, expand.Options{
		TagName:     s.Tag,
		RuntimePath: s.Runtime,
		Strict:      s.Strict,
	})
	res, err := driver.Expand(ctx, pkg.Name, pkg.Files)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to expand %s: %w", pkg.Name, err)
	}
	return pkg, res, driver, nil
}

func report(diags *diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		switch d.Severity {
		case diagnostic.SeverityError:
			output.Error(d.String())
		case diagnostic.SeverityWarning:
			output.Warn(d.String())
		default:
			output.Info(d.String())
		}
	}
}

func diagnosticsErr(diags *diagnostic.Diagnostics) error {
	if diags.HasErrors() {
		return fmt.Errorf("%w: %w", ErrDiagnostics, diags.Err())
	}
	return nil
}
