package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad"
	"github.com/aretw0/notepad/pkg/view"
)

var (
	lsJSON   bool
	lsSearch string
	lsNewest bool
	lsAll    bool
)

// listEntry is the JSON shape of a listed note.
type listEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	Hidden    bool      `json:"hidden,omitempty"`
}

var lsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List notes",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		var opts []notepad.Option
		if lsNewest {
			opts = append(opts, notepad.WithOrder(view.OrderNewestFirst))
		}
		b, _, err := openBoard(cmd, opts...)
		if err != nil {
			fatal("Error", err)
		}
		defer closeBoard(ctx, b)

		b.Search(lsSearch)
		items := b.Render()
		if !lsAll {
			items = view.Visible(items)
		}

		if lsJSON {
			entries := make([]listEntry, 0, len(items))
			for _, it := range items {
				entries = append(entries, listEntry{ID: it.ID, Text: it.Text, CreatedAt: it.CreatedAt, Hidden: it.Hidden})
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(entries); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		for _, it := range items {
			marker := " "
			if it.Hidden {
				marker = "-"
			}
			fmt.Printf("%s %s  %s  %s\n", marker, it.ID, it.CreatedAt.Format(time.DateTime), view.Title(it.Text, 60))
		}
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
	lsCmd.Flags().BoolVar(&lsJSON, "json", false, "Output in JSON format")
	lsCmd.Flags().StringVarP(&lsSearch, "search", "s", "", "Only show notes containing this text (case-insensitive)")
	lsCmd.Flags().BoolVar(&lsNewest, "newest", false, "Most recent notes first")
	lsCmd.Flags().BoolVarP(&lsAll, "all", "a", false, "Include notes hidden by --search, marked with '-'")
}
