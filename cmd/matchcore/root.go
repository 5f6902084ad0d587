package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "matchcore",
		Short:         "Single-instrument limit-order-book matching engine demo",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newDemoCmd())
	root.AddCommand(newServeFeedCmd())

	return root
}
