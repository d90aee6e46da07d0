package config

import (
	"os"

	pkgerrors "compete/pkg/errors"
	"compete/pkg/utils/logger"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "console"
	DefaultColor      = "auto"
	DefaultPlatform   = "atcoder"
	DefaultEdition    = "2021"
	DefaultLanguageID = "5054"
)

// Config holds CLI settings. These are per-user preferences, not the
// per-workspace compete.toml.
type Config struct {
	Logger logger.Config `yaml:"logger"`
	Color  string        `yaml:"color"`
	Init   InitDefaults  `yaml:"init"`
}

// InitDefaults are the answers `compete init` uses when no flag overrides
// them.
type InitDefaults struct {
	Platform        string `yaml:"platform"`
	Edition         string `yaml:"edition"`
	TestToolchain   string `yaml:"testToolchain"`
	LanguageID      string `yaml:"languageID"`
	SubmitViaBinary bool   `yaml:"submitViaBinary"`
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, pkgerrors.Wrapf(err, pkgerrors.ConfigReadFailed, "read config file failed")
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, pkgerrors.Wrapf(err, pkgerrors.ConfigParseFailed, "parse config file failed")
		}
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = DefaultLogLevel
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = DefaultLogFormat
	}
	if cfg.Logger.OutputPath == "" {
		cfg.Logger.OutputPath = "stderr"
	}
	if cfg.Color == "" {
		cfg.Color = DefaultColor
	}
	if cfg.Init.Platform == "" {
		cfg.Init.Platform = DefaultPlatform
	}
	if cfg.Init.Edition == "" {
		cfg.Init.Edition = DefaultEdition
	}
	if cfg.Init.LanguageID == "" {
		cfg.Init.LanguageID = DefaultLanguageID
	}
}
