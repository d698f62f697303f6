package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/srcloc/srcloc/source"
)

func newSliceCmd() *cobra.Command {
	var withLines bool

	cmd := &cobra.Command{
		Use:   "slice <file> <byte-offset> <length>",
		Short: "Print the byte-exact text of a span",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			offset, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse offset: %w", err)
			}
			length, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("parse length: %w", err)
			}

			src := source.New(data)
			text, err := src.Slice(offset, length)
			if err != nil {
				return err
			}

			if withLines {
				loc := source.NewLocation(src, offset, length)
				os.Stdout.Write(loc.SliceLines())
				return nil
			}

			os.Stdout.Write(text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withLines, "lines", false, "print whole lines touched by the span")

	return cmd
}
