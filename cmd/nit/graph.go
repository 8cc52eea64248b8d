package main

import (
	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/render"
)

var graphAll bool

var graphCmd = &cobra.Command{
	Use:     "graph",
	Short:   "Render the dependency graph",
	GroupID: "deps",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := engine.New(activeStore).Graph(ctx(), graphAll)
		if err != nil {
			emitError(err)
			return nil
		}
		if !quietFlag {
			writeLine(render.Graph(out, outputFormat()))
		}
		return nil
	},
}

func init() {
	graphCmd.Flags().BoolVar(&graphAll, "all", false, "include done and wontfix issues")
	rootCmd.AddCommand(graphCmd)
}
