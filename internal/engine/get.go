package engine

import (
	"context"

	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
	"github.com/nitcli/nit/internal/urgency"
)

// Get returns the full detail projection for issue id, including its
// children if it is an epic. Grounded on original_source's commands/get.rs.
func (e *Engine) Get(ctx context.Context, id int64) (types.IssueDetail, error) {
	var detail types.IssueDetail
	err := e.withTx(ctx, func(tx *store.Tx) error {
		issue, err := store.GetIssue(ctx, tx, id)
		if err != nil {
			return err
		}
		cfg, err := urgency.LoadConfig(ctx, tx)
		if err != nil {
			return err
		}
		d, err := buildDetail(ctx, tx, cfg, issue, true)
		if err != nil {
			return err
		}
		detail = d
		return nil
	})
	if err != nil {
		return types.IssueDetail{}, err
	}
	return detail, nil
}
