// Package sqlite implements the snapshot backend. JSONL files are the
// source of truth; the SQLite database is rewritten on every Save and
// serves as a query surface for external tooling.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// dbFileName is the SQLite database file inside the data directory.
const dbFileName = "taskboard.db"

// Backend persists core snapshots under a data directory. It must be
// attached with a validated Config before Save or Load.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewBackend creates a detached backend; call Attach with a Config to
// initialize it.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration. It creates
// the data directory if needed, rebuilds the SQLite database from schema,
// and creates empty JSONL mirrors for any missing table.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	// The database file is disposable; JSONL is the source of truth.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	for _, ddl := range schemaStatements {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.config.DataDir = dataDir
	b.attached = true
	return nil
}

// Detach releases the backend's resources. After Detach, Save and Load
// return ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	return nil
}

// DataDir returns the effective data directory. Empty until attached.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.DataDir
}

// initJSONLFiles creates empty JSONL mirrors for any table missing one, so
// a fresh data directory is immediately loadable.
func initJSONLFiles(dataDir string) error {
	tables := append([]string{}, entityTables...)
	tables = append(tables, snapshotsTable)
	for _, table := range tables {
		path := jsonlPath(dataDir, table)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return err
		}
		if err := writeJSONL(path, nil); err != nil {
			return fmt.Errorf("initializing %s: %w", path, err)
		}
	}
	return nil
}
