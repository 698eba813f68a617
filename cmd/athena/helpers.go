// Shared helpers for athena CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mesh-intelligence/athena/internal/sqlite"
	"github.com/mesh-intelligence/athena/pkg/types"
)

// validTableNamesStr is a comma-separated list of valid table names for
// error output.
var validTableNamesStr = strings.Join(types.StandardTableNames, ", ")

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it with the loaded configuration. The caller must defer
// backend.Detach().
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend:               types.BackendSQLite,
		DataDir:               dataDir,
		SyncStrategy:          configSyncStrategy,
		StrictRatioValidation: configStrictRatios,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// parseRecordJSON unmarshals JSON data into the correct entity struct based
// on the table name.
func parseRecordJSON(tableName string, data []byte) (any, error) {
	switch tableName {
	case types.ProfilesTable:
		var e types.StartupProfile
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return &e, nil
	case types.BenchmarksTable:
		var e types.BenchmarkRow
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return &e, nil
	case types.AssessmentsTable:
		var e types.RiskAssessment
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return &e, nil
	default:
		return nil, fmt.Errorf("unknown table %q (valid: %s)", tableName, validTableNamesStr)
	}
}

// printRecord writes a record to stdout as indented JSON.
func printRecord(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// printWarnings reports soft-invariant warnings on stderr so they never
// corrupt JSON output on stdout.
func printWarnings(warnings []types.Violation) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.String())
	}
}

// exitOnValidation prints a validation failure and exits with the user error
// code; any other error exits with the system error code. Returns when err
// is nil.
func exitOnValidation(context string, err error) {
	if err == nil {
		return
	}
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", context, verr)
		os.Exit(exitUserError)
	}
	if errors.Is(err, types.ErrDuplicateKey) || errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrInvalidID) || errors.Is(err, types.ErrInvalidData) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", context, err)
		os.Exit(exitUserError)
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", context, err)
	os.Exit(exitSysError)
}
