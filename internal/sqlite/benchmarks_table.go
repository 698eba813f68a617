package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/athena/pkg/types"
	"github.com/mesh-intelligence/athena/pkg/validate"
)

// Compile-time interface check.
var _ types.BenchmarkTable = (*benchmarksTable)(nil)

// benchmarksTable implements types.BenchmarkTable. Point lookups by natural
// key are served from the benchmark_by_key cross-reference index; List runs
// against SQLite.
type benchmarksTable struct {
	backend *Backend
}

// Create inserts a new benchmark row. Returns ErrDuplicateKey if the
// (sector, stage, metric_name) triple already exists.
func (t *benchmarksTable) Create(row *types.BenchmarkRow) (*types.BenchmarkRow, error) {
	if row == nil {
		return nil, types.ErrInvalidData
	}
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	rec := row.Clone()
	if b.idx.benchmark(rec.Key()) != nil {
		return nil, types.ErrDuplicateKey
	}
	if res := validate.Benchmark(rec, b.opts); !res.OK() {
		return nil, res.Err()
	}

	rec.UpdatedAt = time.Now().UTC()
	if err := t.write(rec); err != nil {
		return nil, err
	}
	b.idx.putBenchmark(rec)
	if err := b.persistTable(types.BenchmarksTable, t.persistJSONL); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// Upsert replaces the row for the key wholesale, advancing updated_at.
// Creates when the key does not exist. A violating candidate is rejected,
// never reordered, and the existing row stays untouched.
func (t *benchmarksTable) Upsert(row *types.BenchmarkRow) (*types.BenchmarkRow, error) {
	if row == nil {
		return nil, types.ErrInvalidData
	}
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	rec := row.Clone()
	if res := validate.Benchmark(rec, b.opts); !res.OK() {
		return nil, res.Err()
	}

	now := time.Now().UTC()
	if existing := b.idx.benchmark(rec.Key()); existing != nil && !now.After(existing.UpdatedAt) {
		now = existing.UpdatedAt.Add(time.Nanosecond)
	}
	rec.UpdatedAt = now

	if err := t.write(rec); err != nil {
		return nil, err
	}
	b.idx.putBenchmark(rec)
	if err := b.persistTable(types.BenchmarksTable, t.persistJSONL); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// Get returns the row for the key from the cross-reference index, or
// ErrNotFound. ErrInvalidID covers a key with missing components.
func (t *benchmarksTable) Get(key types.BenchmarkKey) (*types.BenchmarkRow, error) {
	if key.Empty() {
		return nil, types.ErrInvalidID
	}
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	row := b.idx.benchmark(key)
	if row == nil {
		return nil, types.ErrNotFound
	}
	return row, nil
}

// List returns rows matching the filter, ordered by key.
func (t *benchmarksTable) List(filter types.BenchmarkFilter) ([]*types.BenchmarkRow, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	var conditions []string
	var args []any
	if filter.Sector != "" {
		conditions = append(conditions, "sector = ?")
		args = append(args, filter.Sector)
	}
	if filter.Stage != "" {
		conditions = append(conditions, "stage = ?")
		args = append(args, filter.Stage)
	}
	if filter.MetricName != "" {
		conditions = append(conditions, "metric_name = ?")
		args = append(args, filter.MetricName)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}
	query := "SELECT " + benchmarkColumns + " FROM benchmarks" + where +
		" ORDER BY sector, stage, metric_name"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		if filter.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing benchmarks: %w", err)
	}
	defer rows.Close()

	results := []*types.BenchmarkRow{}
	for rows.Next() {
		row, err := scanBenchmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning benchmark: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

const benchmarkColumns = "sector, stage, metric_name, p25, p50, p75, p90, updated_at"

// write upserts the benchmark row. Caller holds the write lock.
func (t *benchmarksTable) write(row *types.BenchmarkRow) error {
	_, err := t.backend.db.Exec(`
		INSERT INTO benchmarks (sector, stage, metric_name, p25, p50, p75, p90, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(sector, stage, metric_name) DO UPDATE SET
			p25 = excluded.p25,
			p50 = excluded.p50,
			p75 = excluded.p75,
			p90 = excluded.p90,
			updated_at = excluded.updated_at`,
		row.Sector, row.Stage, row.MetricName,
		nullFloat(row.P25), nullFloat(row.P50), nullFloat(row.P75), nullFloat(row.P90),
		row.UpdatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("upserting benchmark: %w", err)
	}
	return nil
}

// scanBenchmark hydrates one row into a BenchmarkRow.
func scanBenchmark(row interface{ Scan(dest ...any) error }) (*types.BenchmarkRow, error) {
	var b types.BenchmarkRow
	var p25, p50, p75, p90 sql.NullFloat64
	var updatedAt string
	err := row.Scan(&b.Sector, &b.Stage, &b.MetricName, &p25, &p50, &p75, &p90, &updatedAt)
	if err != nil {
		return nil, err
	}
	b.P25 = fromNullFloat(p25)
	b.P50 = fromNullFloat(p50)
	b.P75 = fromNullFloat(p75)
	b.P90 = fromNullFloat(p90)
	b.UpdatedAt, err = time.Parse(timeLayout, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing benchmark updated_at: %w", err)
	}
	return &b, nil
}

// scanAll reads every benchmark row, optionally filtered by sector, for
// index rebuilds and JSONL persistence. Caller holds a lock.
func (t *benchmarksTable) scanAll(sector string) ([]*types.BenchmarkRow, error) {
	query := "SELECT " + benchmarkColumns + " FROM benchmarks"
	var args []any
	if sector != "" {
		query += " WHERE sector = ?"
		args = append(args, sector)
	}
	query += " ORDER BY sector, stage, metric_name"

	rows, err := t.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("reading benchmarks: %w", err)
	}
	defer rows.Close()

	var results []*types.BenchmarkRow
	for rows.Next() {
		row, err := scanBenchmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning benchmark: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// persistJSONL rewrites benchmarks.jsonl from the SQLite table.
// Caller holds the write lock.
func (t *benchmarksTable) persistJSONL() error {
	records, err := t.scanAll("")
	if err != nil {
		return err
	}
	lines, err := marshalLines(records)
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(t.backend.dataDir, benchmarksJSONL), lines)
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullFloat(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}
