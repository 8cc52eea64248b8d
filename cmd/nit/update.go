package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/types"
)

var (
	updStatus     string
	updPriority   string
	updKind       string
	updTitle      string
	updContext    string
	updFiles      []string
	updTags       []string
	updAcceptance string
	updParent     int64
	updAddFiles   []string
	updRemFiles   []string
	updAddTags    []string
	updRemTags    []string
)

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Update fields on an existing issue",
	GroupID: "issues",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			emitError(idParseError(args[0]))
			return nil
		}

		var in engine.UpdateInput
		f := cmd.Flags()
		if f.Changed("status") {
			s := types.Status(updStatus)
			in.Status = &s
		}
		if f.Changed("priority") {
			p := types.Priority(updPriority)
			in.Priority = &p
		}
		if f.Changed("kind") {
			k := types.Kind(updKind)
			in.Kind = &k
		}
		if f.Changed("title") {
			in.Title = &updTitle
		}
		if f.Changed("context") {
			in.Context = &updContext
		}
		if f.Changed("acceptance") {
			in.Acceptance = &updAcceptance
		}
		if f.Changed("files") {
			in.Files = &updFiles
		}
		if f.Changed("tags") {
			in.Tags = &updTags
		}
		if f.Changed("parent") {
			in.ParentID = &updParent
		}
		in.AddFiles = updAddFiles
		in.RemoveFiles = updRemFiles
		in.AddTags = updAddTags
		in.RemoveTags = updRemTags

		result, err := engine.New(activeStore).Update(ctx(), id, in)
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
	f := updateCmd.Flags()
	f.StringVarP(&updStatus, "status", "s", "", "status: open, in-progress, done, wontfix")
	f.StringVarP(&updPriority, "priority", "p", "", "priority: critical, high, medium, low")
	f.StringVarP(&updKind, "kind", "k", "", "kind: bug, feature, task, epic")
	f.StringVar(&updTitle, "title", "", "replace the title")
	f.StringVarP(&updContext, "context", "c", "", "replace the context")
	f.StringVarP(&updAcceptance, "acceptance", "a", "", "replace the acceptance criteria")
	f.StringSliceVar(&updFiles, "files", nil, "replace the whole files list")
	f.StringSliceVarP(&updTags, "tags", "t", nil, "replace the whole tags list")
	f.Int64Var(&updParent, "parent", 0, "replace the parent epic id")
	f.StringSliceVar(&updAddFiles, "add-files", nil, "add files to the existing list")
	f.StringSliceVar(&updRemFiles, "remove-files", nil, "remove files from the existing list")
	f.StringSliceVar(&updAddTags, "add-tags", nil, "add tags to the existing list")
	f.StringSliceVar(&updRemTags, "remove-tags", nil, "remove tags from the existing list")
	rootCmd.AddCommand(updateCmd)
}
