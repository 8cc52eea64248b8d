package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
)

var schemaCmd = &cobra.Command{
	Use:     "schema",
	Short:   "Print the database schema",
	GroupID: "setup",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(engine.Schema())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
