package main

import (
	"context"
	"path/filepath"

	"compete/internal/compete/config"
	"compete/internal/compete/manifest"
	"compete/pkg/utils/contextkey"
	"compete/pkg/utils/logger"

	"go.uber.org/zap"
)

// locator holds the flags that select a configuration file.
type locator struct {
	configPath   string
	manifestPath string
}

func (a *app) manifest(manifestPath string) (*manifest.Package, error) {
	cwd, err := a.workingDir()
	if err != nil {
		return nil, err
	}
	if manifestPath == "" {
		manifestPath = manifest.FileName
	}
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(cwd, manifestPath)
	}
	return manifest.Read(a.fs, manifestPath)
}

// locate resolves the configuration path. A manifest path selects the
// package-scoped lookup.
func (a *app) locate(ctx context.Context, l locator) (string, *manifest.Package, error) {
	if l.manifestPath != "" {
		pkg, err := a.manifest(l.manifestPath)
		if err != nil {
			return "", nil, err
		}
		logger.Debug(ctx, "read package manifest", zap.String("manifest", pkg.ManifestPath))
		path, err := config.LocateForPackage(a.fs, pkg)
		if err != nil {
			return "", nil, err
		}
		return path, pkg, nil
	}

	cwd, err := a.workingDir()
	if err != nil {
		return "", nil, err
	}
	path, err := config.Locate(a.fs, cwd, l.configPath)
	if err != nil {
		return "", nil, err
	}
	logger.Debugf(ctx, "located configuration at %s", path)
	return path, nil, nil
}

func (a *app) load(ctx context.Context, l locator) (context.Context, *config.Config, string, *manifest.Package, error) {
	path, pkg, err := a.locate(ctx, l)
	if err != nil {
		return ctx, nil, "", nil, err
	}
	ctx = context.WithValue(ctx, contextkey.ConfigPath, path)
	if pkg != nil {
		ctx = context.WithValue(ctx, contextkey.Package, pkg.Name)
	}

	cfg, err := config.Load(a.fs, path, a.shell)
	if err != nil {
		logger.Error(ctx, "failed to load configuration", zap.Error(err))
		return ctx, nil, "", nil, err
	}
	if err := cfg.WarnDeprecations(a.shell); err != nil {
		return ctx, nil, "", nil, err
	}
	logger.Info(ctx, "loaded configuration")
	return ctx, cfg, path, pkg, nil
}
