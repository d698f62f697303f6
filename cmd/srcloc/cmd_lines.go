package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/srcloc/srcloc/source"
)

func newLinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines <file>",
		Short: "Dump the newline-offset table and per-line byte spans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			src := source.New(data)
			fmt.Printf("newline offsets: %v\n", src.NewlineOffsets())

			offset := 0
			for offset <= src.Len() {
				start, end := src.LineStart(offset), src.LineEnd(offset)
				fmt.Printf("line %d: bytes [%d, %d)\n", src.Line(offset), start, end)
				if end == src.Len() {
					break
				}
				offset = end
			}

			return nil
		},
	}

	return cmd
}
