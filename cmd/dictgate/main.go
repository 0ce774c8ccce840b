package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "dictgate",
		Short:         "Dictionary-membership challenge gate",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(serveCmd(), genCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
