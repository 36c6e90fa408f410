package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aretw0/notepad/pkg/core"
)

var fontCmd = &cobra.Command{
	Use:   "font [px]",
	Short: "Show or set the note font size",
	Long:  fmt.Sprintf("Font prints the font size, or sets it to a value between %d and %d.", core.MinFontSize, core.MaxFontSize),
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		b, _, err := openBoard(cmd)
		if err != nil {
			fatal("Error", err)
		}
		defer closeBoard(ctx, b)

		if len(args) == 0 {
			fmt.Println(b.FontSize())
			return
		}

		px, err := strconv.Atoi(args[0])
		if err != nil {
			fatal("Invalid font size", err)
		}
		if err := b.SetFontSize(ctx, px); err != nil {
			fatal("Failed to set font size", err)
		}
		fmt.Printf("Font size set to %dpx\n", px)
	},
}

func init() {
	rootCmd.AddCommand(fontCmd)
}
