package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/nitcli/nit/internal/store"
)

// InitResult reports the resolved database path and whether this call
// created it (false means an existing database was opened idempotently).
type InitResult struct {
	Path    string
	Created bool
}

// Init opens or creates the database at path and, if agentsMD is set,
// appends (or creates) an AGENTS.md pointer to nit in the database's
// directory. Grounded on original_source's commands/init.rs.
func Init(ctx context.Context, path string, agentsMD bool) (InitResult, error) {
	created := !store.Exists(path)
	s, err := store.New(ctx, path)
	if err != nil {
		return InitResult{}, err
	}
	defer s.Close()

	if agentsMD {
		dir := filepath.Dir(s.Path())
		if err := appendAgentsMD(dir); err != nil {
			return InitResult{}, err
		}
	}

	return InitResult{Path: s.Path(), Created: created}, nil
}

const agentsBlock = `
## Issue Tracking

This project uses ` + "`nit`" + ` for issue tracking. Before starting work, run ` + "`nit ready -f json`" + `
to find the next actionable task. After completing work, run ` + "`nit close <ID> \"reason\"`" + `.
File discovered issues with ` + "`nit add`" + `. Always run ` + "`nit note <ID> \"summary\"`" + ` before ending a session.
`

func appendAgentsMD(dir string) error {
	path := filepath.Join(dir, "AGENTS.md")
	existing, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nerr.IoErrorf(err, "failed to read %s", path)
		}
		if err := os.WriteFile(path, []byte(strings.TrimLeft(agentsBlock, "\n")), 0o644); err != nil {
			return nerr.IoErrorf(err, "failed to write %s", path)
		}
		return nil
	}
	if strings.Contains(string(existing), "## Issue Tracking") {
		return nil
	}
	combined := append(existing, []byte(agentsBlock)...)
	if err := os.WriteFile(path, combined, 0o644); err != nil {
		return nerr.IoErrorf(err, "failed to write %s", path)
	}
	return nil
}
