package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "srcloc",
		Short: "Source position mapping tools",
	}

	rootCmd.AddCommand(newLocateCmd())
	rootCmd.AddCommand(newLinesCmd())
	rootCmd.AddCommand(newSliceCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
