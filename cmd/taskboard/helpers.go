// Shared helpers for taskboard CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/mesh-intelligence/taskboard/internal/memory"
	"github.com/mesh-intelligence/taskboard/internal/sqlite"
	"github.com/mesh-intelligence/taskboard/pkg/apperr"
	"github.com/mesh-intelligence/taskboard/pkg/response"
	"github.com/mesh-intelligence/taskboard/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// newCore creates an empty core, logging repository events to stderr when
// --verbose is set.
func newCore() *memory.Core {
	if flagVerbose {
		return memory.New(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}
	return memory.New(nil)
}

// openCore attaches the backend and loads the stored state into a fresh
// core. The caller must defer backend.Detach().
func openCore() (*sqlite.Backend, *memory.Core) {
	backend, err := attachBackend()
	if err != nil {
		failSys(err)
	}

	core := newCore()
	if err := backend.Load(core); err != nil {
		backend.Detach()
		failSys(fmt.Errorf("load state: %w", err))
	}
	return backend, core
}

// saveCore persists the core, treating failure as a system error.
func saveCore(backend *sqlite.Backend, core *memory.Core) {
	if err := backend.Save(core); err != nil {
		failSys(fmt.Errorf("save state: %w", err))
	}
}

// emit prints the envelope as indented JSON when --json is set, otherwise
// the human-readable line.
func emit(env response.Envelope, human string) {
	if flagJSON {
		out, err := json.MarshalIndent(env.ToMap(), "", "  ")
		if err != nil {
			failSys(fmt.Errorf("marshal JSON: %w", err))
		}
		fmt.Println(string(out))
		return
	}
	fmt.Println(human)
}

// emitList prints serialized entities as a JSON array when --json is set,
// otherwise one human-readable line per entity.
func emitList(items []map[string]any, lines []string) {
	if flagJSON {
		env := response.Success(items, fmt.Sprintf("%d results", len(items)))
		out, err := json.MarshalIndent(env.ToMap(), "", "  ")
		if err != nil {
			failSys(fmt.Errorf("marshal JSON: %w", err))
		}
		fmt.Println(string(out))
		return
	}
	if len(lines) == 0 {
		fmt.Println("(none)")
		return
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}

// fail prints the error and exits with the code matching its kind: domain
// errors are user errors, everything else is a system error.
func fail(err error) {
	if flagJSON {
		out, merr := json.MarshalIndent(response.Error(err).ToMap(), "", "  ")
		if merr == nil {
			fmt.Println(string(out))
		}
	} else {
		fmt.Fprintln(os.Stderr, err)
	}

	switch apperr.CodeOf(err) {
	case apperr.CodeValidation, apperr.CodeNotFound, apperr.CodeConflict, apperr.CodePermissionDenied:
		os.Exit(exitUserError)
	default:
		os.Exit(exitSysError)
	}
}

// failSys prints the error and exits with the system error code.
func failSys(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(exitSysError)
}

// parseID parses a positional id argument, exiting with a user error on
// malformed input.
func parseID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "invalid id %q\n", arg)
		os.Exit(exitUserError)
	}
	return id
}
