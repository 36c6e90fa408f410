package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mvCmd = &cobra.Command{
	Use:   "mv <id> <target-id>",
	Short: "Move a note next to another one",
	Long: `Mv drops a note onto another, like dragging it on the board. A note that
sits after the target moves in front of it; otherwise it moves right after it.`,
	Args: cobra.ExactArgs(2),
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
		target, err := resolveID(b, args[1])
		if err != nil {
			fatal("Error", err)
		}

		moved, err := b.Move(ctx, id, target)
		if err != nil {
			fatal("Failed to move note", err)
		}
		if !moved {
			fmt.Println("Nothing to move.")
			return
		}
		fmt.Printf("Note moved: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(mvCmd)
}
