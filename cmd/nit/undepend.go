package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/types"
)

var undependOn int64

var undependCmd = &cobra.Command{
	Use:     "undepend <id> --on <id>",
	Short:   "Remove a blocked-by relationship",
	GroupID: "deps",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			emitError(idParseError(args[0]))
			return nil
		}
		unblocked, err := engine.New(activeStore).Undepend(ctx(), id, undependOn)
		if err != nil {
			emitError(err)
			return nil
		}
		if !quietFlag {
			fmt.Printf("#%d no longer blocked by #%d\n", id, undependOn)
		}
		if unblocked != nil {
			printUnblocked([]types.UnblockedIssue{*unblocked})
		}
		return nil
	},
}

func init() {
	undependCmd.Flags().Int64Var(&undependOn, "on", 0, "issue id that was blocking <id> (required)")
	_ = undependCmd.MarkFlagRequired("on")
	rootCmd.AddCommand(undependCmd)
}
