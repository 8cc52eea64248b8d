package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/nerr"
)

var (
	exportOutFile string
	exportFormat  string
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export every issue, dependency, and note as jsonl or json",
	GroupID: "sync",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := engine.New(activeStore).Export(ctx())
		if err != nil {
			emitError(err)
			return nil
		}

		var b []byte
		switch exportFormat {
		case "json":
			b, err = data.MarshalSingleDocument()
		case "jsonl", "":
			b, err = data.MarshalJSONL()
		default:
			emitError(nerr.InvalidValuef("export-format", exportFormat, "jsonl or json"))
			return nil
		}
		if err != nil {
			emitError(nerr.ParseErrorf(err, "failed to encode export"))
			return nil
		}

		if exportOutFile != "" {
			if err := os.WriteFile(exportOutFile, b, 0o644); err != nil {
				emitError(nerr.IoErrorf(err, "failed to write %s", exportOutFile))
				return nil
			}
			if !quietFlag {
				fmt.Printf("Exported %d issues to %s\n", len(data.Issues), exportOutFile)
			}
			return nil
		}
		os.Stdout.Write(b)
		if exportFormat == "json" {
			fmt.Println()
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutFile, "output", "o", "", "write to this file instead of stdout")
	exportCmd.Flags().StringVar(&exportFormat, "export-format", "jsonl", "wire encoding: jsonl (one type-discriminated record per line) or json (grouped arrays)")
	rootCmd.AddCommand(exportCmd)
}
