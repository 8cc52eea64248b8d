package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/engine"
	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/types"
)

// batchPayload mirrors BatchItem with JSON tags, accepted on stdin as a
// JSON array, one object per new issue, grounded on original_source's
// commands/batch.rs input contract. blocked_by entries may be JSON
// integers (existing ids) or "@N" strings.
type batchPayload struct {
	Title      string            `json:"title"`
	Priority   string            `json:"priority"`
	Kind       string            `json:"kind"`
	Context    string            `json:"context"`
	Files      []string          `json:"files"`
	Tags       []string          `json:"tags"`
	Acceptance string            `json:"acceptance"`
	ParentID   *int64            `json:"parent_id"`
	BlockedBy  []json.RawMessage `json:"blocked_by"`
}

var batchCmd = &cobra.Command{
	Use:     "batch",
	Short:   "Create many issues from a JSON array on stdin",
	GroupID: "issues",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			emitError(nerr.IoErrorf(err, "failed to read stdin"))
			return nil
		}
		var payloads []batchPayload
		if err := json.Unmarshal(raw, &payloads); err != nil {
			emitError(nerr.ParseErrorf(err, "failed to parse batch JSON"))
			return nil
		}

		items := make([]engine.BatchItem, len(payloads))
		for i, p := range payloads {
			blockedBy := make([]string, len(p.BlockedBy))
			for j, raw := range p.BlockedBy {
				if err := json.Unmarshal(raw, &blockedBy[j]); err != nil {
					blockedBy[j] = string(raw)
				}
			}
			items[i] = engine.BatchItem{
				Title:      p.Title,
				Priority:   types.Priority(orDefault(p.Priority, string(types.DefaultPriority))),
				Kind:       types.Kind(orDefault(p.Kind, string(types.DefaultKind))),
				Context:    p.Context,
				Files:      p.Files,
				Tags:       p.Tags,
				Acceptance: p.Acceptance,
				ParentID:   p.ParentID,
				BlockedBy:  blockedBy,
			}
		}

		details, err := engine.New(activeStore).BatchAdd(ctx(), items)
		if err != nil {
			emitError(err)
			return nil
		}
		if !quietFlag {
			for _, d := range details {
				printDetail(d)
			}
			if !outputFormat().IsJSON() {
				fmt.Printf("Created %d issues\n", len(details))
			}
		}
		return nil
	},
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func init() {
	batchCmd.AddCommand(&cobra.Command{
		Use:   "add",
		Short: batchCmd.Short,
		Args:  cobra.NoArgs,
		RunE:  batchCmd.RunE,
	})
	rootCmd.AddCommand(batchCmd)
}
