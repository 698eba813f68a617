package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/athena/pkg/types"
	"github.com/mesh-intelligence/athena/pkg/validate"
)

// Compile-time interface check.
var _ types.AssessmentTable = (*assessmentsTable)(nil)

// assessmentsTable implements types.AssessmentTable. The table is
// append-only: rows are never updated or replaced, and the risk_by_startup
// index grows in insertion order.
type assessmentsTable struct {
	backend *Backend
}

// Append validates and inserts an assessment as a new immutable entry. The
// referenced startup_id need not exist yet; the reference is recorded as-is
// for later reconciliation. Soft-invariant breaches come back as warnings
// alongside the stored record.
func (t *assessmentsTable) Append(a *types.RiskAssessment) (*types.RiskAssessment, []types.Violation, error) {
	if a == nil {
		return nil, nil, types.ErrInvalidData
	}
	b := t.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, nil, types.ErrDetached
	}

	rec := a.Clone()
	if rec.AssessmentID == "" {
		rec.AssessmentID = newUUID()
	}
	if rec.Evidence == nil {
		rec.Evidence = []string{}
	}

	res := validate.Assessment(rec, b.opts)
	if !res.OK() {
		return nil, res.Warnings, res.Err()
	}

	rec.CreatedAt = time.Now().UTC()

	evidence, err := json.Marshal(rec.Evidence)
	if err != nil {
		return nil, nil, fmt.Errorf("marshaling evidence: %w", err)
	}
	_, err = b.db.Exec(`
		INSERT INTO risk_assessments (assessment_id, startup_id, risk_category,
			risk_score, risk_description, evidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.AssessmentID, rec.StartupID, rec.RiskCategory, rec.RiskScore,
		rec.RiskDescription, string(evidence), rec.CreatedAt.Format(timeLayout))
	if err != nil {
		return nil, nil, fmt.Errorf("inserting assessment: %w", err)
	}

	b.idx.addAssessment(rec)
	if err := b.persistTable(types.AssessmentsTable, t.persistJSONL); err != nil {
		return nil, nil, err
	}
	return rec.Clone(), res.Warnings, nil
}

// Get returns the assessment with the given assessment_id, or ErrNotFound.
func (t *assessmentsTable) Get(assessmentID string) (*types.RiskAssessment, error) {
	if assessmentID == "" {
		return nil, types.ErrInvalidID
	}
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	row := b.db.QueryRow(
		"SELECT "+assessmentColumns+" FROM risk_assessments WHERE assessment_id = ?",
		assessmentID)
	a, err := scanAssessment(row)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting assessment %s: %w", assessmentID, err)
	}
	return a, nil
}

// History returns all assessments for a startup in insertion order, served
// from the risk_by_startup index. An unknown startup yields an empty
// history, not an error: absence means "no record yet".
func (t *assessmentsTable) History(startupID string) ([]*types.RiskAssessment, error) {
	if startupID == "" {
		return nil, types.ErrInvalidID
	}
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.idx.history(startupID), nil
}

// List returns assessments matching the filter in insertion order. The
// Orphans filter selects assessments whose startup_id has no stored profile,
// for the external reconciliation pass.
func (t *assessmentsTable) List(filter types.AssessmentFilter) ([]*types.RiskAssessment, error) {
	b := t.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}

	var conditions []string
	var args []any
	if filter.StartupID != "" {
		conditions = append(conditions, "startup_id = ?")
		args = append(args, filter.StartupID)
	}
	if filter.RiskCategory != "" {
		conditions = append(conditions, "risk_category = ?")
		args = append(args, filter.RiskCategory)
	}
	if filter.Orphans {
		conditions = append(conditions,
			"startup_id NOT IN (SELECT startup_id FROM startup_profiles)")
	}

	query := "SELECT " + assessmentColumns + " FROM risk_assessments"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY seq"
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
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	defer rows.Close()

	results := []*types.RiskAssessment{}
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assessment: %w", err)
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

const assessmentColumns = "assessment_id, startup_id, risk_category, risk_score, " +
	"risk_description, evidence, created_at"

// scanAssessment hydrates one row into a RiskAssessment.
func scanAssessment(row interface{ Scan(dest ...any) error }) (*types.RiskAssessment, error) {
	var a types.RiskAssessment
	var desc sql.NullString
	var evidence, createdAt string
	err := row.Scan(&a.AssessmentID, &a.StartupID, &a.RiskCategory, &a.RiskScore,
		&desc, &evidence, &createdAt)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		a.RiskDescription = desc.String
	}
	if err := json.Unmarshal([]byte(evidence), &a.Evidence); err != nil {
		return nil, fmt.Errorf("parsing evidence: %w", err)
	}
	a.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing assessment created_at: %w", err)
	}
	return &a, nil
}

// scanAllOrdered reads every assessment in insertion order for index
// rebuilds and JSONL persistence. Caller holds a lock.
func (t *assessmentsTable) scanAllOrdered() ([]*types.RiskAssessment, error) {
	rows, err := t.backend.db.Query(
		"SELECT " + assessmentColumns + " FROM risk_assessments ORDER BY seq")
	if err != nil {
		return nil, fmt.Errorf("reading assessments: %w", err)
	}
	defer rows.Close()

	var results []*types.RiskAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assessment: %w", err)
		}
		results = append(results, a)
	}
	return results, rows.Err()
}

// persistJSONL rewrites risk_assessments.jsonl from the SQLite table in
// insertion order. Caller holds the write lock.
func (t *assessmentsTable) persistJSONL() error {
	records, err := t.scanAllOrdered()
	if err != nil {
		return err
	}
	lines, err := marshalLines(records)
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(t.backend.dataDir, assessmentsJSONL), lines)
}
