package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/srcloc/srcloc/config"
	"github.com/srcloc/srcloc/source"
)

func newLocateCmd() *cobra.Command {
	var encodingName string
	var startLine int

	cmd := &cobra.Command{
		Use:   "locate <file> <byte-offset>",
		Short: "Translate a byte offset into every coordinate system",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if encodingName == "" {
				encodingName = cfg.Encoding
			}
			if !cmd.Flags().Changed("start-line") {
				startLine = cfg.StartLine
			}

			enc, err := source.LookupEncoding(encodingName)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			offset, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse offset: %w", err)
			}

			src := source.New(data, source.WithStartLine(startLine))

			fmt.Printf("byte offset:      %d\n", offset)
			fmt.Printf("line:             %d\n", src.Line(offset))
			fmt.Printf("column:           %d\n", src.Column(offset))
			fmt.Printf("character offset: %d\n", src.CharacterOffset(offset))
			fmt.Printf("character column: %d\n", src.CharacterColumn(offset))
			fmt.Printf("%s offset:     %d\n", enc, src.CodeUnitsOffset(offset, enc))
			fmt.Printf("%s column:     %d\n", enc, src.CodeUnitsColumn(offset, enc))

			return nil
		},
	}

	cmd.Flags().StringVarP(&encodingName, "encoding", "e", "", "target encoding for code-unit output")
	cmd.Flags().IntVar(&startLine, "start-line", 1, "line number assigned to the first line")

	return cmd
}
