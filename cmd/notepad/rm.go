package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/pkg/core"
	"github.com/aretw0/notepad/pkg/view"
)

var rmYes bool

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a note",
	Long:    `Rm permanently removes a note after asking for confirmation.`,
	Args:    cobra.ExactArgs(1),
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

		confirm := func(core.Note) bool { return true }
		if !rmYes {
			confirm = prompt(os.Stdin, cmd.ErrOrStderr())
		}

		deleted, err := b.Delete(ctx, id, confirm)
		if err != nil {
			fatal("Failed to delete note", err)
		}
		if !deleted {
			fmt.Println("Aborted.")
			return
		}
		fmt.Printf("Note deleted: %s\n", id)
	},
}

// prompt asks on w and reads the answer from r. Only "y" or "yes" confirms.
func prompt(r io.Reader, w io.Writer) func(core.Note) bool {
	return func(n core.Note) bool {
		title := view.Title(n.Text, 40)
		if title == "" {
			title = n.ID
		}
		fmt.Fprintf(w, "Delete note %q? [y/N] ", title)
		answer, _ := bufio.NewReader(r).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		}
		return false
	}
}

func init() {
	rootCmd.AddCommand(rmCmd)
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Do not ask for confirmation")
}
