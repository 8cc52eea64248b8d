package main

import (
	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/render"
	"github.com/nitcli/nit/internal/types"
)

var (
	listAll         bool
	listStatuses    []string
	listPriorities  []string
	listKinds       []string
	listTags        []string
	listBlockedOnly bool
	listParent      int64
	listSort        string
	listLimit       int
)

var listIncludeBlocked bool

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List issues matching a filter",
	GroupID: "views",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := types.IssueFilter{
			All:         listAll,
			Statuses:    toStatuses(listStatuses),
			Priorities:  toPriorities(listPriorities),
			Kinds:       toKinds(listKinds),
			Tags:        listTags,
			BlockedOnly: listBlockedOnly,
			Sort:        types.SortField(listSort),
			Limit:       listLimit,
		}
		f.IncludeBlocked = listIncludeBlocked
		if cmd.Flags().Changed("parent") {
			f.ParentID = &listParent
		}

		issues, err := engine.New(activeStore).List(ctx(), f)
		if err != nil {
			if isEmptyResult(err) {
				emitEmpty("No matching issues found.")
				return nil
			}
			emitError(err)
			return nil
		}
		if !quietFlag {
			writeLine(render.IssueList(issues, outputFormat()))
		}
		return nil
	},
}

func toStatuses(raw []string) []types.Status {
	out := make([]types.Status, len(raw))
	for i, s := range raw {
		out[i] = types.Status(s)
	}
	return out
}

func toPriorities(raw []string) []types.Priority {
	out := make([]types.Priority, len(raw))
	for i, s := range raw {
		out[i] = types.Priority(s)
	}
	return out
}

func toKinds(raw []string) []types.Kind {
	out := make([]types.Kind, len(raw))
	for i, s := range raw {
		out[i] = types.Kind(s)
	}
	return out
}

func init() {
	f := listCmd.Flags()
	f.BoolVar(&listAll, "all", false, "include done and wontfix issues")
	f.StringSliceVar(&listStatuses, "status", nil, "filter by status (repeatable)")
	f.StringSliceVar(&listPriorities, "priority", nil, "filter by priority (repeatable)")
	f.StringSliceVar(&listKinds, "kind", nil, "filter by kind (repeatable)")
	f.StringSliceVar(&listTags, "tags", nil, "filter by tags (all must match)")
	f.BoolVar(&listBlockedOnly, "blocked", false, "only show blocked issues")
	f.BoolVar(&listIncludeBlocked, "include-blocked", false, "show blocked issues alongside unblocked ones")
	f.Int64Var(&listParent, "parent", 0, "only show children of this epic")
	f.StringVar(&listSort, "sort", "urgency", "sort field: urgency, priority, created, updated, id")
	f.IntVar(&listLimit, "limit", 0, "maximum number of issues to return (0 = unlimited)")
	rootCmd.AddCommand(listCmd)
}
