package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/types"
)

var (
	addPriority   string
	addKind       string
	addContext    string
	addFiles      []string
	addTags       []string
	addAcceptance string
	addParent     int64
	addBlockedBy  []int64
)

var addCmd = &cobra.Command{
	Use:     "add <title>",
	Short:   "Create a new issue",
	GroupID: "issues",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := engine.AddInput{
			Title:      strings.TrimSpace(args[0]),
			Priority:   types.Priority(addPriority),
			Kind:       types.Kind(addKind),
			Context:    addContext,
			Files:      addFiles,
			Tags:       addTags,
			Acceptance: addAcceptance,
			BlockedBy:  addBlockedBy,
		}
		if addParent != 0 {
			in.ParentID = &addParent
		}
		detail, err := engine.New(activeStore).Add(ctx(), in)
		if err != nil {
			emitError(err)
			return nil
		}
		printDetail(detail)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(types.DefaultPriority), "priority: critical, high, medium, low")
	addCmd.Flags().StringVarP(&addKind, "kind", "k", string(types.DefaultKind), "kind: bug, feature, task, epic")
	addCmd.Flags().StringVarP(&addContext, "context", "c", "", "free-form context")
	addCmd.Flags().StringSliceVar(&addFiles, "files", nil, "associated file paths")
	addCmd.Flags().StringSliceVarP(&addTags, "tags", "t", nil, "tags")
	addCmd.Flags().StringVarP(&addAcceptance, "acceptance", "a", "", "acceptance criteria")
	addCmd.Flags().Int64Var(&addParent, "parent", 0, "parent epic id")
	addCmd.Flags().Int64SliceVarP(&addBlockedBy, "blocked-by", "b", nil, "ids of issues that block this one")
	rootCmd.AddCommand(addCmd)
}
