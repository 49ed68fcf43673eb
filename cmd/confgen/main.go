package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	goversion "github.com/caarlos0/go-version"

	"github.com/origadmin/confgen/internal/commands"
	"github.com/origadmin/confgen/internal/config"
	"github.com/origadmin/confgen/internal/output"
)

var (
	version   = "0.0.1"
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := commands.NewRootCmd(buildVersion(version, commit, date, builtBy, treeState))
	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, commands.ErrDiagnostics) {
			output.Error(err.Error())
		}
		stop()
		os.Exit(1)
	}
}

func buildVersion(version, commit, date, builtBy, treeState string) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(config.Application, config.Description, config.WebSite),
		func(i *goversion.Info) {
			i.ASCIIName = config.UI
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}
