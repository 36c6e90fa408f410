package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id> [text...]",
	Short: "Replace the text of a note",
	Long: `Edit replaces the text of a note. With no text arguments the new text is
read from standard input.`,
	Args: cobra.MinimumNArgs(1),
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

		text := strings.Join(args[1:], " ")
		if len(args) == 1 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
			text = strings.TrimSuffix(string(data), "\n")
		}

		if err := b.UpdateText(ctx, id, text); err != nil {
			fatal("Failed to save note", err)
		}
		fmt.Printf("Note updated: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
