package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/athena/pkg/types"
	"github.com/mesh-intelligence/athena/pkg/validate"
)

// Backend implements types.Warehouse using SQLite as the query engine and
// JSONL files as the durable interchange format.
//
// Concurrency: mu serializes writes (exclusive) against reads (shared).
// The cross-reference index is updated under the write lock after the SQL
// statement commits, so an operation's index entry is visible before the
// operation returns and no reader ever observes a partially-written record.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	opts     validate.Options
	db       *sql.DB
	dataDir  string

	idx *crossIndex

	profiles    *profilesTable
	benchmarks  *benchmarksTable
	assessments *assessmentsTable

	// Deferred JSONL persistence for the on_close sync strategy. Each persist
	// function rewrites its whole file, so only the latest per table is kept.
	pendingMu sync.Mutex
	pending   map[string]func() error
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		idx:     newCrossIndex(),
		pending: make(map[string]func() error),
	}
}

// Profiles returns the startup profile table.
func (b *Backend) Profiles() (types.ProfileTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.profiles, nil
}

// Benchmarks returns the benchmark table.
func (b *Backend) Benchmarks() (types.BenchmarkTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.benchmarks, nil
}

// Assessments returns the risk assessment table.
func (b *Backend) Assessments() (types.AssessmentTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.assessments, nil
}

// Attach initializes the backend with the given configuration: creates the
// data directory, initializes the SQLite schema, loads the JSONL interchange
// files, seeds default benchmark rows on first run, and rebuilds the
// cross-reference index. Returns ErrAlreadyAttached if already attached.
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
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	// The database file is rebuilt from JSONL on every attach.
	dbPath := filepath.Join(dataDir, "athena.db")
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}
	for _, ddl := range allSchemas {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("initializing schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.opts = validate.Options{StrictRatios: config.StrictRatioValidation}
	b.pending = make(map[string]func() error)

	if err := b.initJSONLFiles(); err != nil {
		db.Close()
		return err
	}
	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}
	if err := seedDefaultBenchmarks(db); err != nil {
		db.Close()
		return fmt.Errorf("seed benchmarks: %w", err)
	}

	b.attached = true
	b.profiles = &profilesTable{backend: b}
	b.benchmarks = &benchmarksTable{backend: b}
	b.assessments = &assessmentsTable{backend: b}

	if err := b.rebuildIndex(); err != nil {
		b.attached = false
		db.Close()
		return fmt.Errorf("rebuild index: %w", err)
	}

	// Seeded rows must reach the interchange files on first run.
	if err := b.benchmarks.persistJSONL(); err != nil {
		b.attached = false
		db.Close()
		return err
	}

	return nil
}

// Detach flushes pending JSONL writes, releases the SQLite connection, and
// resets the index. Idempotent: multiple calls succeed.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if err := b.flushPendingLocked(); err != nil {
		return fmt.Errorf("flush pending writes: %w", err)
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.idx = newCrossIndex()
	b.profiles = nil
	b.benchmarks = nil
	b.assessments = nil

	return nil
}

// persistTable runs the JSONL persist function now (immediate strategy) or
// queues it until Detach (on_close). The caller must hold b.mu.
func (b *Backend) persistTable(tableName string, persist func() error) error {
	if b.config.SyncStrategy == types.SyncOnClose {
		b.pendingMu.Lock()
		b.pending[tableName] = persist
		b.pendingMu.Unlock()
		return nil
	}
	return persist()
}

// flushPendingLocked executes all queued JSONL writes. The caller must hold
// the b.mu write lock.
func (b *Backend) flushPendingLocked() error {
	b.pendingMu.Lock()
	defer b.pendingMu.Unlock()

	for tableName, persist := range b.pending {
		if err := persist(); err != nil {
			return fmt.Errorf("flush %s: %w", tableName, err)
		}
	}
	b.pending = make(map[string]func() error)
	return nil
}

// rebuildIndex reconstructs the cross-reference index from the loaded
// SQLite state. The caller must hold the b.mu write lock.
func (b *Backend) rebuildIndex() error {
	idx := newCrossIndex()

	rows, err := b.benchmarks.scanAll("")
	if err != nil {
		return err
	}
	for _, row := range rows {
		idx.putBenchmark(row)
	}

	assessments, err := b.assessments.scanAllOrdered()
	if err != nil {
		return err
	}
	for _, a := range assessments {
		idx.addAssessment(a)
	}

	b.idx = idx
	return nil
}

// initJSONLFiles creates empty interchange files on first run so external
// consumers always find the full file set.
func (b *Backend) initJSONLFiles() error {
	for _, name := range jsonlFileNames {
		path := filepath.Join(b.dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", name, err)
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
	}
	return nil
}

// newUUID generates a UUID v7 string for record identifiers.
func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails.
		return uuid.New().String()
	}
	return id.String()
}
