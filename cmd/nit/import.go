package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/nerr"
)

var (
	importInFile string
	importMerge  bool
)

var importCmd = &cobra.Command{
	Use:     "import",
	Short:   "Import issues, dependencies, and notes from an export (jsonl or json)",
	GroupID: "sync",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw []byte
		var err error
		if importInFile != "" {
			raw, err = os.ReadFile(importInFile)
		} else {
			raw, err = io.ReadAll(bufio.NewReader(os.Stdin))
		}
		if err != nil {
			emitError(nerr.IoErrorf(err, "failed to read import source"))
			return nil
		}

		data, err := engine.ParseExportData(raw)
		if err != nil {
			emitError(err)
			return nil
		}

		result, err := engine.New(activeStore).Import(ctx(), data, importMerge)
		if err != nil {
			emitError(err)
			return nil
		}
		if !quietFlag {
			fmt.Printf("Imported %d rows, skipped %d\n", result.Imported, result.Skipped)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importInFile, "input", "i", "", "read from this file instead of stdin")
	importCmd.Flags().BoolVar(&importMerge, "merge", false, "skip colliding rows instead of aborting the whole import")
	rootCmd.AddCommand(importCmd)
}
