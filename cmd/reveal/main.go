package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// app carries the state shared by the subcommands once the root command
// has loaded configuration.
type app struct {
	configPath string
	cfg        cliConfig
	log        *slog.Logger
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "reveal",
		Short:         "Develop and preview pages animated with reveal effects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadCLIConfig(a.configPath, cmd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			a.cfg = cfg
			a.log = newLogger(logConfig{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: stderr})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.config/reveal/config.yml)")
	root.PersistentFlags().String("log-level", defaultLogLevel, "log level: debug, info, warn or error")
	root.PersistentFlags().String("log-format", defaultLogFormat, "log format: text or json")
	root.SetErr(stderr)

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newInspectCmd(a))
	root.AddCommand(newSimulateCmd(a))
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
