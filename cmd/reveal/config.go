package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/octoberswimmer/reveal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	defaultPort      = 8000
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultOutput    = "text"
)

// cliConfig holds the settings shared by the subcommands. Each key can come
// from a flag, a REVEAL_* environment variable or the config file, in that
// order of precedence.
type cliConfig struct {
	Port          int     `mapstructure:"port"`
	Open          bool    `mapstructure:"open"`
	LogLevel      string  `mapstructure:"log-level"`
	LogFormat     string  `mapstructure:"log-format"`
	FrameInterval float64 `mapstructure:"frame-interval"`
	Output        string  `mapstructure:"output"`
}

func loadCLIConfig(configPath string, cmd *cobra.Command) (cliConfig, error) {
	var cfg cliConfig

	v := viper.New()
	v.SetEnvPrefix("REVEAL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("port", defaultPort)
	v.SetDefault("open", false)
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("log-format", defaultLogFormat)
	v.SetDefault("frame-interval", reveal.DefaultFrameInterval)
	v.SetDefault("output", defaultOutput)

	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return cfg, fmt.Errorf("binding flags: %w", err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		v.SetConfigFile(filepath.Join(home, ".config", "reveal", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Output != "text" && cfg.Output != "yaml" {
		return cfg, fmt.Errorf("unknown output format %q (want text or yaml)", cfg.Output)
	}
	return cfg, nil
}
