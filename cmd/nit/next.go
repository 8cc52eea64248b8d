package main

import (
	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
)

var nextClaim bool

var nextCmd = &cobra.Command{
	Use:     "next",
	Short:   "Show the single highest-urgency actionable issue",
	GroupID: "views",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := engine.New(activeStore).Next(ctx(), nextClaim)
		if err != nil {
			if isEmptyResult(err) {
				emitEmpty("No eligible issues found.")
				return nil
			}
			emitError(err)
			return nil
		}
		printDetail(detail)
		return nil
	},
}

func init() {
	nextCmd.Flags().BoolVar(&nextClaim, "claim", false, "mark the chosen issue in-progress")
	rootCmd.AddCommand(nextCmd)
}
