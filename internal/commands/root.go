// Package commands implements the confgen command line.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/origadmin/confgen/internal/config"
	"github.com/origadmin/confgen/internal/output"
)

// ErrDiagnostics is returned when a run reported error diagnostics. The
// diagnostics themselves have already been printed.
var ErrDiagnostics = errors.New("confgen reported errors")

// NewRootCmd builds the confgen command tree.
func NewRootCmd(info goversion.Info) *cobra.Command {
	v := config.NewViper()
	var logCloser io.Closer

	root := &cobra.Command{
		Use:   config.Application,
		Short: config.Description,
		Long: `confgen reads the structs of a Go package annotated with //go:confgen:config
or //go:confgen:group and writes a <package>_confgen.go file that loads every
tagged field from a configuration source, falling back to typed defaults.

Typical use is a go:generate line next to the annotated types:

  //go:generate go run github.com/origadmin/confgen/cmd/confgen generate`,
		Version:       info.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			closer, err := setupLogging(v.GetBool(config.KeyDebug), v.GetString(config.KeyLogFile), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logCloser = closer
			output.SetVerbose(v.GetBool(config.KeyDebug))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().Bool(config.KeyDebug, false, "Enable debug logging")
	root.PersistentFlags().String(config.KeyLogFile, "", "Path to a file where logs should be written. If empty, logs go to stderr.")

	root.AddCommand(newGenerateCmd(v), newInspectCmd(v))
	return root
}

// setupLogging installs the default slog logger. Logs go to logFile when set,
// otherwise to stderr, at Warn level unless debug is on.
func setupLogging(debug bool, logFile string, stderr io.Writer) (io.Closer, error) {
	logWriter := stderr
	var closer io.Closer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", logFile, err)
		}
		logWriter, closer = f, f
	}

	logLevel := slog.LevelWarn
	if debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	})))
	return closer, nil
}

func dirArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// addExpandFlags registers the flags shared by generate and inspect.
func addExpandFlags(cmd *cobra.Command) {
	cmd.Flags().String(config.KeyTag, "", "Struct tag key carrying the value annotation (default \"confgen\")")
	cmd.Flags().String(config.KeyRuntime, "", "Import path of the configuration source package used by generated code")
	cmd.Flags().Bool(config.KeyStrict, false, "Report malformed value annotations as errors and unsupported types as warnings")
}

func loadSettings(v *viper.Viper, dir string) (*config.Settings, error) {
	s, err := config.Load(v, dir)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded settings", "settings", fmt.Sprintf("%+v", *s))
	return s, nil
}
