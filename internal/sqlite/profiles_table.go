package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/athena/pkg/types"
	"github.com/mesh-intelligence/athena/pkg/validate"
)

// timeLayout is the timestamp format used in SQLite columns and JSONL files.
// Nanosecond precision keeps updated_at strictly monotonic across reloads.
const timeLayout = time.RFC3339Nano

// Compile-time interface check.
var _ types.ProfileTable = (*profilesTable)(nil)

// profilesTable implements types.ProfileTable. Nested composite values are
// stored as JSON columns and hydrated back into struct fields whole, so the
// funnel invariant is always checked against a complete market_data value.
type profilesTable struct {
	backend *Backend
}

// Create inserts a new profile. The natural-key check runs before
// validation so a caller retrying a duplicate gets ErrDuplicateKey rather
// than a repeated rule report. An empty startup_id is assigned a UUID v7.
func (t *profilesTable) Create(p *types.StartupProfile) (*types.StartupProfile, error) {
	if p == nil {
		return nil, types.ErrInvalidData
	}
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	rec := p.Clone()
	if rec.StartupID == "" {
		rec.StartupID = newUUID()
	}

	exists, err := t.exists(rec.StartupID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, types.ErrDuplicateKey
	}

	if res := validate.Profile(rec, b.opts); !res.OK() {
		return nil, res.Err()
	}

	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if err := t.write(rec); err != nil {
		return nil, err
	}
	if err := b.persistTable(types.ProfilesTable, t.persistJSONL); err != nil {
		return nil, err
	}
	return rec, nil
}

// Upsert replaces the profile with the same startup_id wholesale, keeping
// created_at and advancing updated_at monotonically. Creates when absent.
func (t *profilesTable) Upsert(p *types.StartupProfile) (*types.StartupProfile, error) {
	if p == nil {
		return nil, types.ErrInvalidData
	}
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	rec := p.Clone()
	if rec.StartupID == "" {
		rec.StartupID = newUUID()
	}

	if res := validate.Profile(rec, b.opts); !res.OK() {
		return nil, res.Err()
	}

	var createdAt, updatedAt string
	err := b.db.QueryRow(
		"SELECT created_at, updated_at FROM startup_profiles WHERE startup_id = ?",
		rec.StartupID).Scan(&createdAt, &updatedAt)
	now := time.Now().UTC()
	switch {
	case err == sql.ErrNoRows:
		rec.CreatedAt = now
		rec.UpdatedAt = now
	case err != nil:
		return nil, fmt.Errorf("checking profile: %w", err)
	default:
		rec.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing profile created_at: %w", err)
		}
		prev, err := time.Parse(timeLayout, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing profile updated_at: %w", err)
		}
		// updated_at never moves backwards, even across clock skew.
		if !now.After(prev) {
			now = prev.Add(time.Nanosecond)
		}
		rec.UpdatedAt = now
	}

	if err := t.write(rec); err != nil {
		return nil, err
	}
	if err := b.persistTable(types.ProfilesTable, t.persistJSONL); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get returns the profile with the given startup_id, or ErrNotFound.
func (t *profilesTable) Get(startupID string) (*types.StartupProfile, error) {
	if startupID == "" {
		return nil, types.ErrInvalidID
	}
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	row := b.db.QueryRow(
		"SELECT "+profileColumns+" FROM startup_profiles WHERE startup_id = ?",
		startupID)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting profile %s: %w", startupID, err)
	}
	return p, nil
}

// List returns profiles matching the filter, newest first. Each call runs a
// fresh query against current state.
func (t *profilesTable) List(filter types.ProfileFilter) ([]*types.StartupProfile, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	query := "SELECT " + profileColumns + " FROM startup_profiles"
	var args []any
	if filter.CompanyName != "" {
		query += " WHERE company_name = ?"
		args = append(args, filter.CompanyName)
	}
	query += " ORDER BY created_at DESC, startup_id"
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
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	results := []*types.StartupProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

const profileColumns = "startup_id, company_name, founders, problem_statement, " +
	"solution_description, market_data, traction_metrics, financials, created_at, updated_at"

// exists reports whether a profile row is present. Caller holds the lock.
func (t *profilesTable) exists(startupID string) (bool, error) {
	var one int
	err := t.backend.db.QueryRow(
		"SELECT 1 FROM startup_profiles WHERE startup_id = ?", startupID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking profile: %w", err)
	}
	return true, nil
}

// write upserts the profile row. Caller holds the write lock and has already
// checked key semantics.
func (t *profilesTable) write(p *types.StartupProfile) error {
	founders, err := json.Marshal(p.Founders)
	if err != nil {
		return fmt.Errorf("marshaling founders: %w", err)
	}
	market, err := json.Marshal(p.MarketData)
	if err != nil {
		return fmt.Errorf("marshaling market_data: %w", err)
	}
	traction, err := json.Marshal(p.TractionMetrics)
	if err != nil {
		return fmt.Errorf("marshaling traction_metrics: %w", err)
	}
	financials, err := json.Marshal(p.Financials)
	if err != nil {
		return fmt.Errorf("marshaling financials: %w", err)
	}

	_, err = t.backend.db.Exec(`
		INSERT INTO startup_profiles (startup_id, company_name, founders, problem_statement,
			solution_description, market_data, traction_metrics, financials, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(startup_id) DO UPDATE SET
			company_name = excluded.company_name,
			founders = excluded.founders,
			problem_statement = excluded.problem_statement,
			solution_description = excluded.solution_description,
			market_data = excluded.market_data,
			traction_metrics = excluded.traction_metrics,
			financials = excluded.financials,
			updated_at = excluded.updated_at`,
		p.StartupID, p.CompanyName, string(founders), nullString(p.ProblemStatement),
		nullString(p.SolutionDescription), string(market), string(traction), string(financials),
		p.CreatedAt.Format(timeLayout), p.UpdatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

// scanProfile hydrates one row into a StartupProfile.
func scanProfile(row interface{ Scan(dest ...any) error }) (*types.StartupProfile, error) {
	var p types.StartupProfile
	var founders, market, traction, financials string
	var problem, solution sql.NullString
	var createdAt, updatedAt string
	err := row.Scan(&p.StartupID, &p.CompanyName, &founders, &problem, &solution,
		&market, &traction, &financials, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(founders), &p.Founders); err != nil {
		return nil, fmt.Errorf("parsing founders: %w", err)
	}
	if err := json.Unmarshal([]byte(market), &p.MarketData); err != nil {
		return nil, fmt.Errorf("parsing market_data: %w", err)
	}
	if err := json.Unmarshal([]byte(traction), &p.TractionMetrics); err != nil {
		return nil, fmt.Errorf("parsing traction_metrics: %w", err)
	}
	if err := json.Unmarshal([]byte(financials), &p.Financials); err != nil {
		return nil, fmt.Errorf("parsing financials: %w", err)
	}
	p.ProblemStatement = fromNullString(problem)
	p.SolutionDescription = fromNullString(solution)
	p.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing profile created_at: %w", err)
	}
	p.UpdatedAt, err = time.Parse(timeLayout, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing profile updated_at: %w", err)
	}
	return &p, nil
}

// persistJSONL rewrites startup_profiles.jsonl from the SQLite table.
// Caller holds the write lock.
func (t *profilesTable) persistJSONL() error {
	rows, err := t.backend.db.Query(
		"SELECT " + profileColumns + " FROM startup_profiles ORDER BY created_at, startup_id")
	if err != nil {
		return fmt.Errorf("reading profiles for JSONL: %w", err)
	}
	defer rows.Close()

	var records []*types.StartupProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return fmt.Errorf("scanning profile for JSONL: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	lines, err := marshalLines(records)
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(t.backend.dataDir, profilesJSONL), lines)
}

// nullString converts an optional text field to its SQL representation.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
