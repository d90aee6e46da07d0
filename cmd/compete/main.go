package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cliconfig "compete/internal/cli/config"
	"compete/internal/compete/fsys"
	"compete/internal/compete/shell"
	pkgerrors "compete/pkg/errors"
	"compete/pkg/utils/contextkey"
	"compete/pkg/utils/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	app := &app{fs: fsys.OS(), out: os.Stdout, errOut: os.Stderr}
	ctx := context.Background()
	if err := app.root().ExecuteContext(ctx); err != nil {
		e := pkgerrors.GetError(err)
		logger.Error(ctx, "command failed", zap.Int("code", int(e.Code)), zap.Any("details", e.Details))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		_ = logger.Sync()
		os.Exit(pkgerrors.GetCode(err).ExitCode())
	}
	_ = logger.Sync()
}

// app carries what every subcommand shares.
type app struct {
	fs     fsys.FS
	out    io.Writer
	errOut io.Writer

	// cwd overrides the process working directory when set.
	cwd string

	settingsPath string
	color        string

	settings cliconfig.Config
	shell    *shell.Shell
}

func (a *app) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "compete",
		Short:         "Locate, check and scaffold compete.toml workspaces",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.settingsPath, "settings", defaultSettingsPath(), "Path to the CLI settings file")
	root.PersistentFlags().StringVar(&a.color, "color", "", "Coloring: auto, always, never")

	root.AddCommand(
		a.initCommand(),
		a.locateCommand(),
		a.checkCommand(),
		a.renderCommand(),
		a.openCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	settings, err := cliconfig.Load(a.settingsPath)
	if err != nil {
		return err
	}
	if a.color != "" {
		settings.Color = a.color
	}
	choice, err := shell.ParseColorChoice(settings.Color)
	if err != nil {
		return err
	}
	if err := logger.Init(settings.Logger); err != nil {
		return pkgerrors.Wrapf(err, pkgerrors.InvalidParams, "init logger failed")
	}

	a.settings = settings
	a.shell = shell.New(a.errOut, choice, logger.Named("shell"))
	cmd.SetContext(context.WithValue(cmd.Context(), contextkey.Command, cmd.Name()))
	return nil
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".compete", "cli.yaml")
	}
	return filepath.Join(dir, "compete", "cli.yaml")
}

func (a *app) workingDir() (string, error) {
	if a.cwd != "" {
		return a.cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", pkgerrors.Internal(err).WithMessage("could not get the current directory")
	}
	return cwd, nil
}
