package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/store"
)

var initAgentsMD bool

var initCmd = &cobra.Command{
	Use:     "init",
	Short:   "Create a new database in the current directory",
	GroupID: "setup",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := store.DefaultInitPath(dbFlag)
		if err != nil {
			emitError(err)
			return nil
		}
		result, err := engine.Init(ctx(), path, initAgentsMD)
		if err != nil {
			emitError(err)
			return nil
		}
		if !quietFlag {
			if result.Created {
				fmt.Printf("Initialized database at %s\n", result.Path)
			} else {
				fmt.Printf("Database already exists at %s\n", result.Path)
			}
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initAgentsMD, "agents-md", false, "append a nit usage pointer to AGENTS.md")
	rootCmd.AddCommand(initCmd)
}
