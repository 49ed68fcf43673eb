package commands

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/origadmin/confgen/internal/model"
	"github.com/origadmin/confgen/internal/output"
)

// inspectReport is the YAML document printed by inspect.
type inspectReport struct {
	Package     string             `yaml:"package"`
	Dir         string             `yaml:"dir"`
	Aggregates  []*model.Aggregate `yaml:"aggregates"`
	Generated   []generatedDecls   `yaml:"generated,omitempty"`
	Diagnostics []string           `yaml:"diagnostics,omitempty"`
}

// generatedDecls lists the declaration roles emitted for one type.
type generatedDecls struct {
	Type         string           `yaml:"type"`
	Declarations []model.DeclKind `yaml:"declarations,flow"`
}

func newInspectCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [dir]",
		Short: "Print the annotated declarations of the package in dir as YAML",
		Long: `Runs extraction without writing anything and prints, for every annotated
struct, its scope and the properties or nested fields confgen would generate
code for.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), v, dirArg(args))
		},
	}
	addExpandFlags(cmd)
	return cmd
}

func runInspect(ctx context.Context, v *viper.Viper, dir string) error {
	s, err := loadSettings(v, dir)
	if err != nil {
		return err
	}
	pkg, res, _, err := expandPackage(ctx, s, dir)
	if err != nil {
		return err
	}

	rep := inspectReport{
		Package:    pkg.Name,
		Dir:        pkg.Dir,
		Aggregates: res.Aggregates,
	}
	for _, exp := range res.Expansions {
		rep.Generated = append(rep.Generated, generatedDecls{Type: exp.TypeName, Declarations: exp.Kinds()})
	}
	for _, d := range res.Diagnostics.All() {
		rep.Diagnostics = append(rep.Diagnostics, d.String())
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	output.Raw(buf.Bytes())
	return diagnosticsErr(&res.Diagnostics)
}
