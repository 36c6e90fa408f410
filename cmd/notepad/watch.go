package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/pkg/adapters/lifecycle"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print changes made to the notes by other processes",
	Long: `Watch follows the store and prints one line per change until interrupted.
Only the filesystem adapter can be watched.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		b, cfg, err := openBoard(cmd, notepad.WithWatch(true))
		if err != nil {
			fatal("Error", err)
		}
		defer closeBoard(cmd.Context(), b)

		if cfg.Storage.Adapter != "fs" {
			fatal("Error", fmt.Errorf("adapter %q cannot be watched", cfg.Storage.Adapter))
		}

		src := lifecycle.NewSource(b)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to start watcher", err)
		}
		fmt.Fprintf(os.Stderr, "Watching %s (ctrl+c to stop)\n", cfg.Storage.Path)

		for e := range src.Events() {
			fmt.Printf("%s %s\n", time.Now().Format(time.TimeOnly), e)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
