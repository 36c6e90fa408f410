package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/internal/tui"
)

var showPreview bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, cfg, err := openBoard(cmd)
		if err != nil {
			fatal("Error", err)
		}
		defer closeBoard(ctx, b)

		id, err := resolveID(b, args[0])
		if err != nil {
			fatal("Error", err)
		}
		note, _ := b.Get(id)

		if !showPreview {
			fmt.Println(note.Text)
			return
		}
		out, err := tui.RenderMarkdown(note.Text, cfg.Display.MarkdownStyle, cfg.Display.WordWrap)
		if err != nil {
			fatal("Failed to render note", err)
		}
		fmt.Println(out)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showPreview, "preview", false, "Render the note as markdown")
}
