package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
)

var dependOn int64

var dependCmd = &cobra.Command{
	Use:     "depend <id> --on <id>",
	Short:   "Record that --on blocks <id>",
	GroupID: "deps",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			emitError(idParseError(args[0]))
			return nil
		}
		created, err := engine.New(activeStore).Depend(ctx(), id, dependOn)
		if err != nil {
			emitError(err)
			return nil
		}
		if !quietFlag {
			if created {
				fmt.Printf("#%d now blocked by #%d\n", id, dependOn)
			} else {
				fmt.Printf("#%d is already blocked by #%d\n", id, dependOn)
			}
		}
		return nil
	},
}

func init() {
	dependCmd.Flags().Int64Var(&dependOn, "on", 0, "issue id that blocks <id> (required)")
	_ = dependCmd.MarkFlagRequired("on")
	rootCmd.AddCommand(dependCmd)
}
