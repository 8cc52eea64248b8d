package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/render"
)

var noteCmd = &cobra.Command{
	Use:     "note <id> [text]",
	Short:   "Append a note to an issue",
	GroupID: "issues",
	Args:    cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			emitError(idParseError(args[0]))
			return nil
		}

		content := ""
		if len(args) == 2 {
			content = args[1]
		} else if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
			if piped, err := io.ReadAll(bufio.NewReader(os.Stdin)); err == nil {
				content = strings.TrimSpace(string(piped))
			}
		}

		note, err := engine.New(activeStore).Note(ctx(), id, content, resolveAgent())
		if err != nil {
			emitError(err)
			return nil
		}
		if !quietFlag {
			if outputFormat().IsJSON() {
				writeLine(render.MarshalAny(note))
			} else {
				fmt.Printf("Note added to #%d: %s\n", id, note.Content)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
}
