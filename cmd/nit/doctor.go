package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/render"
)

var (
	doctorFix     bool
	doctorVerbose bool
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Short:   "Diagnose (and optionally repair) database inconsistencies",
	GroupID: "maint",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := engine.New(activeStore).Doctor(ctx(), doctorFix)
		if err != nil {
			emitError(err)
			return nil
		}
		if !quietFlag {
			switch {
			case outputFormat().IsJSON():
				writeLine(render.MarshalAny(result))
			case doctorVerbose && outputFormat() == render.Pretty:
				b, err := yaml.Marshal(result)
				if err != nil {
					emitError(err)
					return nil
				}
				fmt.Print(string(b))
			default:
				if len(result.Problems) == 0 {
					fmt.Println("No problems found.")
				}
				for _, p := range result.Problems {
					fixable := ""
					if p.Fixable {
						fixable = " (fixable)"
					}
					fmt.Printf("[%s]%s %s\n", p.Kind, fixable, p.Message)
				}
				for _, f := range result.Fixed {
					fmt.Println("Fixed: " + f)
				}
			}
		}
		// Exit 1 if any problem was found, fixed or not, mirroring
		// doctor.rs's unconditional process::exit(1) on a non-clean report.
		if len(result.Problems) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "automatically repair fixable problems")
	doctorCmd.Flags().BoolVarP(&doctorVerbose, "verbose", "v", false, "with -f pretty, dump the full diagnostic report as YAML")
	rootCmd.AddCommand(doctorCmd)
}
