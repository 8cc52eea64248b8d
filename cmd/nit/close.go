package main

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
)

var closeWontfix bool

var closeCmd = &cobra.Command{
	Use:     "close <id> [reason]",
	Short:   "Close an issue as done (or wontfix)",
	GroupID: "issues",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			emitError(idParseError(args[0]))
			return nil
		}

		reason := ""
		if len(args) == 2 {
			reason = args[1]
		} else if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
			if piped, err := io.ReadAll(bufio.NewReader(os.Stdin)); err == nil {
				reason = strings.TrimSpace(string(piped))
			}
		}

		result, err := engine.New(activeStore).Close(ctx(), id, reason, closeWontfix)
		if err != nil {
			emitError(err)
			return nil
		}
		printDetail(result.Detail)
		printUnblocked(result.Unblocked)
		return nil
	},
}

func init() {
	closeCmd.Flags().BoolVar(&closeWontfix, "wontfix", false, "close as wontfix instead of done")
	rootCmd.AddCommand(closeCmd)
}
