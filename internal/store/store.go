// Package store implements durable, transactional persistence for the
// issue engine on top of an embedded SQLite database, following the fixed
// four-table schema and database-location protocol of spec.md §4.1.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	sqlite3 "github.com/ncruces/go-sqlite3"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/tetratelabs/wazero"
)

// Store wraps the single SQLite connection used by one command invocation.
// Per spec §5, the process is synchronous and single-threaded, so a single
// connection (not a pool) is the correct shape: there is exactly one writer
// and no concurrent in-process readers to serve.
type Store struct {
	db     *sql.DB
	path   string
	closed atomic.Bool
}

func setupWASMCache() {
	cacheDir := ""
	if userCache, err := os.UserCacheDir(); err == nil {
		cacheDir = filepath.Join(userCache, "nit", "wasm")
	}

	var cache wazero.CompilationCache
	if cacheDir != "" {
		if c, err := wazero.NewCompilationCacheWithDir(cacheDir); err == nil {
			cache = c
		}
	}
	if cache == nil {
		cache = wazero.NewCompilationCache()
	}
	sqlite3.RuntimeConfig = wazero.NewRuntimeConfig().WithCompilationCache(cache)
}

func init() {
	setupWASMCache()
}

var memdbCounter atomic.Int64

// New opens (creating if absent) the SQLite database at path and applies
// the schema. path may be ":memory:" for tests. Each ":memory:" call gets
// its own uniquely named in-memory database, so independent Store values
// in the same process never see each other's data despite the shared
// cache mode mode=memory requires for a single connection to see its own
// writes consistently.
func New(ctx context.Context, path string) (*Store, error) {
	var connStr string
	isMemory := path == ":memory:"
	if isMemory {
		name := fmt.Sprintf("memdb%d", memdbCounter.Add(1))
		connStr = "file:" + name + "?mode=memory&cache=shared&_pragma=journal_mode(DELETE)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(30000)"
	} else {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create directory: %w", err)
			}
		}
		connStr = "file:" + path + "?_pragma=foreign_keys(ON)&_pragma=busy_timeout(30000)"
	}

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Exactly one connection: one writer, no concurrent readers within this
	// process, and SQLite's per-connection isolation for in-memory databases
	// requires it regardless.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if !isMemory {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	absPath := path
	if !isMemory {
		if a, err := filepath.Abs(path); err == nil {
			absPath = a
		}
	}

	return &Store{db: db, path: absPath}, nil
}

// Close checkpoints the WAL and releases the connection. Safe to call more
// than once.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if !strings.Contains(s.path, ":memory:") {
		_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	}
	return s.db.Close()
}

// Path returns the absolute path to the backing file (or ":memory:").
func (s *Store) Path() string { return s.path }

// Exists reports whether a database file already exists at path, used by
// init to report created=false on a pre-existing store.
func Exists(path string) bool {
	if path == ":memory:" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
