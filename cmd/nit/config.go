package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/render"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Inspect or change urgency scoring coefficients",
	GroupID: "setup",
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every config key, its effective value, and override status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := engine.New(activeStore).ConfigList(ctx())
		if err != nil {
			emitError(err)
			return nil
		}
		if quietFlag {
			return nil
		}
		if outputFormat().IsJSON() {
			writeLine(render.MarshalAny(entries))
			return nil
		}
		for _, e := range entries {
			mark := ""
			if e.Override {
				mark = " (override)"
			}
			fmt.Printf("%s=%s%s\n", e.Key, e.Value, mark)
		}
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a single config key's effective value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := engine.New(activeStore).ConfigGet(ctx(), args[0])
		if err != nil {
			emitError(err)
			return nil
		}
		if !quietFlag {
			fmt.Println(v)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Override a config key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := engine.New(activeStore).ConfigSet(ctx(), args[0], args[1]); err != nil {
			emitError(err)
			return nil
		}
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every config override",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := engine.New(activeStore).ConfigReset(ctx()); err != nil {
			emitError(err)
			return nil
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd, configGetCmd, configSetCmd, configResetCmd)
	rootCmd.AddCommand(configCmd)
}
