package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
)

var getCmd = &cobra.Command{
	Use:     "get <id>",
	Short:   "Show an issue's full detail",
	GroupID: "views",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			emitError(idParseError(args[0]))
			return nil
		}
		detail, err := engine.New(activeStore).Get(ctx(), id)
		if err != nil {
			emitError(err)
			return nil
		}
		printDetail(detail)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
