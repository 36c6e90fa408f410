package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive board",
	Long: `Board opens the notes in the terminal. Edits are saved 500ms after the last
keystroke and everything pending is saved on exit.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		r := tui.NewRenderer()

		cfg, err := loadConfig(cmd)
		if err != nil {
			fatal("Error", err)
		}
		// Logs would tear the alternate screen.
		b, _, err := openBoard(cmd,
			notepad.WithRenderer(r),
			notepad.WithWatch(cfg.Editor.Watch),
			notepad.WithLogger(discardLogger()),
		)
		if err != nil {
			fatal("Error", err)
		}
		defer closeBoard(ctx, b)

		if err := tui.Run(ctx, b, r, tui.Options{
			MarkdownStyle: cfg.Display.MarkdownStyle,
			WordWrap:      cfg.Display.WordWrap,
		}); err != nil {
			fatal("Board failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
}
