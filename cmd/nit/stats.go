package main

import (
	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/render"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Short:   "Show aggregate issue statistics",
	GroupID: "views",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := engine.New(activeStore).Stats(ctx())
		if err != nil {
			emitError(err)
			return nil
		}
		if !quietFlag {
			writeLine(render.Stats(s, outputFormat()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
