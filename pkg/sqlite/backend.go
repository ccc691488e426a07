// Package sqlite exposes the factory for the SQLite snapshot backend while
// keeping implementation details internal.
package sqlite

import (
	"github.com/mesh-intelligence/taskboard/internal/sqlite"
)

// NewBackend creates a new SQLite snapshot backend. The backend is not
// attached; call Attach with a Config to initialize.
//
// Example:
//
//	backend := sqlite.NewBackend()
//	err := backend.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".taskboard-db",
//	})
//	defer backend.Detach()
func NewBackend() *sqlite.Backend {
	return sqlite.NewBackend()
}
