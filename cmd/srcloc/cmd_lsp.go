package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/srcloc/srcloc/lsp"
)

func newLSPCmd() *cobra.Command {
	var verbosity int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the position hover server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbosity, nil)
			server := lsp.NewServer("0.1.0")
			return server.RunStdio()
		},
	}

	cmd.Flags().IntVar(&verbosity, "verbose", 1, "log verbosity")

	return cmd
}
