package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"compete/internal/compete/config"
	"compete/internal/compete/fsys"
	"compete/internal/compete/manifest"
	pkgerrors "compete/pkg/errors"
	"compete/pkg/utils/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (l *locator) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&l.configPath, "config", "", "Path to compete.toml")
	cmd.Flags().StringVar(&l.manifestPath, "manifest-path", "", "Path to the package Cargo.toml")
}

func (a *app) initCommand() *cobra.Command {
	var (
		platform     string
		edition      string
		toolchain    string
		languageID   string
		viaBinary    bool
		dependencies string
		lockfile     string
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Create a compete.toml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults := a.settings.Init
			params := config.GenerateParams{
				Lockfile:        lockfile,
				TestToolchain:   defaults.TestToolchain,
				SubmitViaBinary: defaults.SubmitViaBinary,
				LanguageID:      defaults.LanguageID,
			}
			if cmd.Flags().Changed("toolchain") {
				params.TestToolchain = toolchain
			}
			if cmd.Flags().Changed("language-id") {
				params.LanguageID = languageID
			}
			if cmd.Flags().Changed("submit-via-binary") {
				params.SubmitViaBinary = viaBinary
			}
			if platform == "" {
				platform = defaults.Platform
			}
			if edition == "" {
				edition = defaults.Edition
			}

			var err error
			if params.Platform, err = config.ParsePlatform(platform); err != nil {
				return err
			}
			if params.Edition, err = config.ParseEdition(edition); err != nil {
				return err
			}

			cwd, err := a.workingDir()
			if err != nil {
				return err
			}
			dir := cwd
			if len(args) == 1 {
				dir = resolve(cwd, args[0])
			}

			if dependencies != "" {
				text, err := fsys.ReadToString(a.fs, resolve(cwd, dependencies))
				if err != nil {
					return err
				}
				if _, err := config.ParseFragment(text); err != nil {
					return err
				}
				params.DependenciesContent = text
			}

			path := filepath.Join(dir, config.FileName)
			if fsys.Exists(a.fs, path) && !force {
				return pkgerrors.ValidationError("path", "exists").
					WithMessagef("`%s` already exists. pass --force to overwrite it", path)
			}

			text, err := config.Generate(params)
			if err != nil {
				return err
			}
			if err := fsys.Write(a.fs, path, text); err != nil {
				return err
			}
			logger.Info(cmd.Context(), "generated configuration",
				zap.String("path", path), zap.String("platform", string(params.Platform)))
			return a.shell.Status("Wrote", path)
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Platform: atcoder, codeforces, yukicoder")
	cmd.Flags().StringVar(&edition, "edition", "", "Rust edition of generated packages")
	cmd.Flags().StringVar(&toolchain, "toolchain", "", "Toolchain used for tests")
	cmd.Flags().StringVar(&languageID, "language-id", "", "Language ID used on submit")
	cmd.Flags().BoolVar(&viaBinary, "submit-via-binary", false, "Submit the output of cargo-executable-payload")
	cmd.Flags().StringVar(&dependencies, "dependencies", "", "TOML file whose content becomes `[dependencies]`")
	cmd.Flags().StringVar(&lockfile, "lockfile", "", "Lockfile copied to new packages, relative to compete.toml")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing compete.toml")
	return cmd
}

func (a *app) locateCommand() *cobra.Command {
	var l locator
	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Print the path of the compete.toml in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _, err := a.locate(cmd.Context(), l)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, path)
			return err
		},
	}
	l.bind(cmd)
	return cmd
}

func (a *app) checkCommand() *cobra.Command {
	var l locator
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load compete.toml and report what it configures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, path, _, err := a.load(cmd.Context(), l)
			if err != nil {
				return err
			}
			block, err := cfg.Template(a.fs, path, a.shell)
			if err != nil {
				return err
			}

			lines := []string{
				"config:     " + path,
				"test-suite: " + cfg.TestSuite.Source(),
				"new:        " + describeNew(cfg.New),
				"test:       profile=" + string(cfg.Test.Profile) + toolchainSuffix(cfg.Test.Toolchain),
				"submit:     " + describeSubmit(cfg.Submit),
			}
			if block.New != nil && block.New.Edition != "" {
				lines = append(lines, "edition:    "+string(block.New.Edition))
			}
			if cfg.Add != nil {
				lines = append(lines, "add:        "+cfg.Add.URL.Source())
			}
			for _, line := range lines {
				if _, err := fmt.Fprintln(a.out, line); err != nil {
					return err
				}
			}
			logger.Info(ctx, "configuration is valid")
			return nil
		},
	}
	l.bind(cmd)
	return cmd
}

func (a *app) renderCommand() *cobra.Command {
	var l locator
	var contest string
	cmd := &cobra.Command{
		Use:   "render (test-suite BIN_ALIAS | new-path PACKAGE_NAME)",
		Short: "Render a path template from compete.toml",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "test-suite":
				if l.manifestPath == "" {
					l.manifestPath = manifest.FileName
				}
				_, cfg, _, pkg, err := a.load(cmd.Context(), l)
				if err != nil {
					return err
				}
				out, err := renderTestSuite(cfg, pkg, args[1])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, out)
				return err
			case "new-path":
				_, cfg, _, _, err := a.load(cmd.Context(), l)
				if err != nil {
					return err
				}
				tpl, ok := cfg.NewPath()
				if !ok {
					return pkgerrors.Newf(pkgerrors.ValidationFailed, "package generation is disabled (`new.kind = \"none\"`)")
				}
				vars := map[string]any{"package_name": args[1], "contest": nil}
				if contest != "" {
					vars["contest"] = contest
				}
				out, err := tpl.Render(vars)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, out)
				return err
			default:
				return pkgerrors.BadRequest(fmt.Sprintf("unknown template %q (expected test-suite or new-path)", args[0]))
			}
		},
	}
	l.bind(cmd)
	cmd.Flags().StringVar(&contest, "contest", "", "Contest ID for new-path")
	return cmd
}

func (a *app) openCommand() *cobra.Command {
	var l locator
	cmd := &cobra.Command{
		Use:   "open BIN_ALIAS...",
		Short: "Print the commands `open` produces for the given problems",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if l.manifestPath == "" {
				l.manifestPath = manifest.FileName
			}
			_, cfg, _, pkg, err := a.load(cmd.Context(), l)
			if err != nil {
				return err
			}

			paths := make([]config.OpenPath, 0, len(args))
			for _, alias := range args {
				suite, err := renderTestSuite(cfg, pkg, alias)
				if err != nil {
					return err
				}
				binName, _ := pkg.BinByAlias(alias)
				src, err := sourcePath(cfg, pkg, binName, alias)
				if err != nil {
					return err
				}
				paths = append(paths, config.OpenPath{Src: src, TestSuite: suite})
			}

			commands, err := cfg.OpenCommands(pkg.ManifestDir(), paths)
			if err != nil {
				return err
			}
			for _, command := range commands {
				if _, err := fmt.Fprintln(a.out, strings.Join(command, " ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
	l.bind(cmd)
	return cmd
}

func renderTestSuite(cfg *config.Config, pkg *manifest.Package, alias string) (string, error) {
	binName, ok := pkg.BinByAlias(alias)
	if !ok {
		return "", pkgerrors.NotFoundError(fmt.Sprintf("bin alias `%s` in `%s`", alias, pkg.ManifestPath)).
			WithDetails(map[string]interface{}{"alias": alias, "manifest": pkg.ManifestPath})
	}
	return cfg.TestSuite.Render(map[string]any{
		"manifest_dir": pkg.ManifestDir(),
		"contest":      pkg.Name,
		"bin_name":     binName,
		"bin_alias":    alias,
		"problem":      alias,
	})
}

// sourcePath finds the source of a bin target: the manifest's `[[bin]]`
// path, else `add.bin-src-path`, else the cargo default.
func sourcePath(cfg *config.Config, pkg *manifest.Package, binName, alias string) (string, error) {
	if path, ok := pkg.TargetPath(binName); ok {
		return path, nil
	}
	if cfg.Add != nil && cfg.Add.BinSrcPath != nil {
		path, err := cfg.Add.BinSrcPath.Render(map[string]any{
			"bin_name":  binName,
			"bin_alias": alias,
		})
		if err != nil {
			return "", err
		}
		return resolve(pkg.ManifestDir(), path), nil
	}
	return filepath.Join(pkg.ManifestDir(), "src", "bin", binName+".rs"), nil
}

func describeNew(n config.NewStrategy) string {
	switch n := n.(type) {
	case config.NewPlatform:
		return "cargo-compete (" + string(n.Platform) + ")"
	case config.NewOjAPI:
		return "oj-api (" + n.URL.Source() + ")"
	default:
		return "none"
	}
}

func describeSubmit(s config.Submit) string {
	desc := "file"
	switch s.(type) {
	case config.SubmitCommand:
		desc = "command"
	case config.SubmitTranspileCommand:
		desc = "command (submit.transpile)"
	}
	if lang, ok := s.Language(); ok {
		desc += ", language-id=" + lang
	}
	return desc
}

func toolchainSuffix(toolchain string) string {
	if toolchain == "" {
		return ""
	}
	return ", toolchain=" + toolchain
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
