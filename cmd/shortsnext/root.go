package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iconidentify/shortsnext/internal/config"
	"github.com/iconidentify/shortsnext/internal/fetcher"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Global flags
var (
	flagConfig   string
	flagStrategy string
	flagCookies  string
	flagDebug    bool
)

// cfg holds the loaded configuration (defaults < config file < env < flags).
var cfg *config.Config

// logger writes to stderr so stdout stays pure JSON.
var logger *slog.Logger

// httpClient overrides the page fetcher's transport when set.
var httpClient fetcher.Doer

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "shortsnext",
		Short: "List the videos YouTube plays after a Short",
		Long: `shortsnext fetches a YouTube Shorts page and prints the autoplay queue
that follows it as JSON.`,
		PersistentPreRunE: loadConfig,
		SilenceUsage:      true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	root.PersistentFlags().StringVarP(&flagStrategy, "strategy", "s", "", "Extraction strategy: sequence | scan | rpc")
	root.PersistentFlags().StringVar(&flagCookies, "cookies", "", "Cookie header sent with the page request")
	root.PersistentFlags().BoolVarP(&flagDebug, "debug", "x", false, "Debug logging to stderr")

	root.AddCommand(newNextCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads and merges configuration, then applies CLI flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagStrategy != "" {
		cfg.Extract.Strategy = flagStrategy
	}
	if flagCookies != "" {
		cfg.Fetch.Cookies = flagCookies
	}

	// Re-validate after flag overrides
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = newLogger(cmd.ErrOrStderr(), flagDebug)
	return nil
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
