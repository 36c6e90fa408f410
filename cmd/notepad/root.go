package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/pkg/core"
)

var (
	verbose    bool
	configPath string
	storePath  string
	adapter    string
	format     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notepad",
	Short: "Sticky notes for the terminal",
	Long: `Notepad keeps a board of short notes in a single record.
Typing is saved automatically, search only hides notes, and notes can be
reordered by dragging one onto another.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/notepad/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&storePath, "path", "p", "", "Store directory (default nearest .notepad or $HOME/.notepad)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "Record format: json or yaml")
}

// loadConfig reads the config file and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*notepad.Config, error) {
	cfg, err := notepad.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("path") {
		cfg.Storage.Path = storePath
	}
	if flags.Changed("adapter") {
		cfg.Storage.Adapter = adapter
	}
	if flags.Changed("format") {
		cfg.Storage.Format = format
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Storage.Path == "" {
		if cfg.Storage.Path, err = notepad.DefaultStorePath(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// openBoard loads the board the command operates on. One-shot commands never
// watch the store; opts are applied after the configuration.
func openBoard(cmd *cobra.Command, opts ...notepad.Option) (*notepad.Board, *notepad.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	all := append(cfg.Options(), notepad.WithWatch(false), notepad.WithLogger(slog.Default()))
	all = append(all, opts...)

	slog.Debug("opening store", "path", cfg.Storage.Path, "adapter", cfg.Storage.Adapter, "format", cfg.Storage.Format)
	b, err := notepad.New(cmd.Context(), cfg.Storage.Path, all...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open notepad: %w", err)
	}
	return b, cfg, nil
}

// closeBoard flushes pending edits; a failure here means lost text.
func closeBoard(ctx context.Context, b *notepad.Board) {
	if err := b.Close(ctx); err != nil {
		fatal("Failed to save notes", err)
	}
}

var errAmbiguousID = errors.New("ambiguous id")

// resolveID accepts a full id or a unique prefix of one.
func resolveID(b *notepad.Board, arg string) (string, error) {
	if arg == "" {
		return "", fmt.Errorf("note id: %w", core.ErrNotFound)
	}
	if _, ok := b.Get(arg); ok {
		return arg, nil
	}
	var match string
	for _, n := range b.Notes() {
		if !strings.HasPrefix(n.ID, arg) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %q", errAmbiguousID, arg)
		}
		match = n.ID
	}
	if match == "" {
		return "", fmt.Errorf("note %q: %w", arg, core.ErrNotFound)
	}
	return match, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
