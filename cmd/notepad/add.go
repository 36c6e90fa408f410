package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Create a note",
	Long:  `Add creates a note, optionally with initial text, and prints its id.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, _, err := openBoard(cmd)
		if err != nil {
			fatal("Error", err)
		}
		defer closeBoard(ctx, b)

		note, err := b.Create(ctx)
		if err != nil {
			fatal("Failed to create note", err)
		}
		if text := strings.Join(args, " "); text != "" {
			if err := b.UpdateText(ctx, note.ID, text); err != nil {
				fatal("Failed to save note", err)
			}
		}
		fmt.Println(note.ID)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
