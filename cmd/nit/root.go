// Command nit is a dependency-aware issue tracker backed by a single
// embedded SQLite file, designed for synchronous, single-writer use by a
// developer or an automated coding agent from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/render"
	"github.com/nitcli/nit/internal/store"
)

var (
	dbFlag     string
	formatFlag string
	quietFlag  bool
	agentFlag  string

	activeStore *store.Store
)

func init() {
	if err := initConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize config: %v\n", err)
	}

	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "database path (default: auto-discover .nit.db)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "compact", "output format: compact, json, pretty")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&agentFlag, "agent", "", "agent name recorded on notes (default: $NIT_AGENT, git user.name, $USER)")
}

func initConfig() error {
	viper.SetEnvPrefix("")
	return viper.BindEnv("db_path", store.EnvVar)
}

var rootCmd = &cobra.Command{
	Use:           "nit",
	Short:         "nit - dependency-aware issue tracker",
	Long:          `Issues chained together like beads on a thread. A lightweight, embedded issue tracker with first-class dependency support.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !outputFormat().IsValid() {
			return nerr.InvalidValuef("format", formatFlag, "compact, json, pretty")
		}
		if isNoDBCommand(cmd) {
			return nil
		}
		path, err := store.Discover(dbFlag)
		if err != nil {
			return err
		}
		s, err := store.New(cmd.Context(), path)
		if err != nil {
			return err
		}
		activeStore = s
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if activeStore != nil {
			return activeStore.Close()
		}
		return nil
	},
}

// noDBCommands lists the subcommands that run before (or instead of)
// opening a database: init creates one, schema is a pure constant.
var noDBCommands = map[string]bool{
	"init":   true,
	"schema": true,
}

func isNoDBCommand(cmd *cobra.Command) bool {
	return noDBCommands[cmd.Name()]
}

func outputFormat() render.Format {
	return render.Format(formatFlag)
}

// resolveAgent returns the agent name attributed to notes and other
// audit-bearing writes: --agent flag, then $NIT_AGENT, then git's
// configured user.name, then $USER, mirroring the teacher's
// getActorWithGit precedence cascade.
func resolveAgent() string {
	if agentFlag != "" {
		return agentFlag
	}
	if v := os.Getenv("NIT_AGENT"); v != "" {
		return v
	}
	if out, err := exec.Command("git", "config", "user.name").Output(); err == nil {
		if name := strings.TrimSpace(string(out)); name != "" {
			return name
		}
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return ""
}

// FatalError writes an error message to stderr and exits with code 1.
func FatalError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// emitError renders err per the active output format and exits with the
// error's exit code, which is 1 for every kind. List/Ready/Next callers
// check isEmptyResult first and route an empty set to emitEmpty (exit 2).
func emitError(err error) {
	nErr, ok := nerr.As(err)
	if !ok {
		FatalError("%v", err)
	}
	if outputFormat().IsJSON() {
		fmt.Fprintf(os.Stderr, `{"error":%q,"code":%q}`+"\n", nErr.Error(), nErr.Code())
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", nErr.Error())
	}
	os.Exit(nErr.ExitCode())
}

// emitEmpty reports an empty result set distinctly from an error: exit
// code 2 with nothing on stdout, and (unless quiet or in JSON format) the
// message on stderr without an "Error:" prefix, per spec.md §6's
// three-way exit-code contract.
func emitEmpty(message string) {
	if !quietFlag && !outputFormat().IsJSON() {
		fmt.Fprintln(os.Stderr, message)
	}
	os.Exit(2)
}

// isEmptyResult reports whether err is a NotFound. List, Ready and Next
// return NotFound only when nothing matched, so their callers treat any
// NotFound as the empty-set case.
func isEmptyResult(err error) bool {
	nErr, ok := nerr.As(err)
	return ok && nErr.Kind == nerr.NotFound
}

func ctx() context.Context {
	return context.Background()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		emitError(err)
	}
}
