// Package cli defines the nasgh command tree: a long-running API
// server plus one-shot commands for resolving targets and getting
// advice from the terminal.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/haithamsoil/nasgh/internal/config"
	"github.com/haithamsoil/nasgh/internal/httpserver"
	"github.com/haithamsoil/nasgh/internal/repository"
)

// App holds the wired services the CLI commands run against.
type App struct {
	Config   *config.Config
	Resolver httpserver.TargetResolver
	Advisor  httpserver.AdviceService
	Readings repository.ReadingLog
	Sessions repository.SessionStore
	Logger   *slog.Logger
}

// NewRootCmd creates the top-level "nasgh" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "nasgh",
		Short:         "Soil monitoring and crop advisory backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newTargetsCmd(app),
		newAdviseCmd(app),
	)

	return root
}
