package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy the text of a note to the clipboard",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, _, err := openBoard(cmd)
		if err != nil {
			fatal("Error", err)
		}
		defer closeBoard(ctx, b)

		id, err := resolveID(b, args[0])
		if err != nil {
			fatal("Error", err)
		}
		if err := b.Copy(id); err != nil {
			fatal("Failed to copy note", err)
		}
		fmt.Println("Copied to clipboard.")
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)
}
