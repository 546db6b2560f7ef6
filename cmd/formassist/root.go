package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tbxark/formassist/config"
)

type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "formassist",
		Short:        "Conversational assistant for filling in banking forms",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Dotenv file loaded before the environment is read")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level override: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format override: text or json")

	root.AddCommand(
		newServeCommand(opts),
		newChatCommand(opts),
		newFormsCommand(),
		newTranscribeCommand(opts),
	)
	return root
}

// load reads the dotenv file and the config, applies flag overrides and
// installs the default logger.
func (o *rootOptions) load() (*config.Config, error) {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	slog.SetDefault(newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat))
	return cfg, nil
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	}
	handler := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           log.Level(lvl),
	})
	return slog.New(handler)
}
