package main

import (
	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/render"
	"github.com/nitcli/nit/internal/types"
)

var (
	readyStatus string
	readyLimit  int
)

var readyCmd = &cobra.Command{
	Use:     "ready",
	Short:   "List unblocked, actionable issues sorted by urgency",
	GroupID: "views",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var status *types.Status
		if cmd.Flags().Changed("status") {
			s := types.Status(readyStatus)
			status = &s
		}
		issues, err := engine.New(activeStore).Ready(ctx(), status, readyLimit)
		if err != nil {
			if isEmptyResult(err) {
				emitEmpty("No ready issues found.")
				return nil
			}
			emitError(err)
			return nil
		}
		if !quietFlag {
			writeLine(render.IssueList(issues, outputFormat()))
		}
		return nil
	},
}

func init() {
	readyCmd.Flags().StringVar(&readyStatus, "status", "", "restrict to a single status (default: open only; in-progress accepted on request)")
	readyCmd.Flags().IntVar(&readyLimit, "limit", 0, "maximum number of issues to return (0 = unlimited)")
	rootCmd.AddCommand(readyCmd)
}
