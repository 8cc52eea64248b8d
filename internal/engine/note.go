package engine

import (
	"context"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
	"github.com/nitcli/nit/internal/types"
)

// Note appends a note to issue id. Content must already be resolved by
// the caller (flag value or trimmed stdin); an empty content is rejected
// here, matching original_source's note.rs InvalidValue on a TTY with no
// text argument.
func (e *Engine) Note(ctx context.Context, id int64, content, agent string) (types.Note, error) {
	if content == "" {
		return types.Note{}, nerr.InvalidValuef("text", "", "non-empty string or pipe via stdin")
	}
	var note types.Note
	err := e.withTx(ctx, func(tx *store.Tx) error {
		if _, err := store.GetIssue(ctx, tx, id); err != nil {
			return err
		}
		n, err := store.InsertNote(ctx, tx, id, content, agent)
		if err != nil {
			return err
		}
		note = n
		return nil
	})
	if err != nil {
		return types.Note{}, err
	}
	return note, nil
}
