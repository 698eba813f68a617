// JSONL loading on Attach. Each interchange file is parsed into its typed
// record and inserted into SQLite; loading is transactional so a failure
// leaves the database empty rather than half-populated. Malformed lines are
// skipped; unknown JSON fields are ignored for forward compatibility.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/athena/pkg/types"
)

// loadAllJSONL reads the interchange files from dataDir and populates the
// SQLite tables.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	if err := loadProfiles(tx, dataDir); err != nil {
		return err
	}
	if err := loadBenchmarks(tx, dataDir); err != nil {
		return err
	}
	if err := loadAssessments(tx, dataDir); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

func loadProfiles(tx *sql.Tx, dataDir string) error {
	lines, err := readJSONL(filepath.Join(dataDir, profilesJSONL))
	if err != nil {
		return fmt.Errorf("reading %s: %w", profilesJSONL, err)
	}
	for _, line := range lines {
		var p types.StartupProfile
		if err := json.Unmarshal(line, &p); err != nil {
			continue // skip malformed records
		}
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
		_, err = tx.Exec(`
			INSERT INTO startup_profiles (startup_id, company_name, founders, problem_statement,
				solution_description, market_data, traction_metrics, financials, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.StartupID, p.CompanyName, string(founders), nullString(p.ProblemStatement),
			nullString(p.SolutionDescription), string(market), string(traction), string(financials),
			p.CreatedAt.Format(timeLayout), p.UpdatedAt.Format(timeLayout))
		if err != nil {
			return fmt.Errorf("loading profile %s: %w", p.StartupID, err)
		}
	}
	return nil
}

func loadBenchmarks(tx *sql.Tx, dataDir string) error {
	lines, err := readJSONL(filepath.Join(dataDir, benchmarksJSONL))
	if err != nil {
		return fmt.Errorf("reading %s: %w", benchmarksJSONL, err)
	}
	for _, line := range lines {
		var b types.BenchmarkRow
		if err := json.Unmarshal(line, &b); err != nil {
			continue
		}
		_, err = tx.Exec(`
			INSERT INTO benchmarks (sector, stage, metric_name, p25, p50, p75, p90, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			b.Sector, b.Stage, b.MetricName,
			nullFloat(b.P25), nullFloat(b.P50), nullFloat(b.P75), nullFloat(b.P90),
			b.UpdatedAt.Format(timeLayout))
		if err != nil {
			return fmt.Errorf("loading benchmark %s/%s/%s: %w",
				b.Sector, b.Stage, b.MetricName, err)
		}
	}
	return nil
}

func loadAssessments(tx *sql.Tx, dataDir string) error {
	lines, err := readJSONL(filepath.Join(dataDir, assessmentsJSONL))
	if err != nil {
		return fmt.Errorf("reading %s: %w", assessmentsJSONL, err)
	}
	// File order is insertion order; seq assignment preserves it.
	for _, line := range lines {
		var a types.RiskAssessment
		if err := json.Unmarshal(line, &a); err != nil {
			continue
		}
		evidence, err := json.Marshal(a.Evidence)
		if err != nil {
			return fmt.Errorf("marshaling evidence: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO risk_assessments (assessment_id, startup_id, risk_category,
				risk_score, risk_description, evidence, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			a.AssessmentID, a.StartupID, a.RiskCategory, a.RiskScore,
			a.RiskDescription, string(evidence), a.CreatedAt.Format(timeLayout))
		if err != nil {
			return fmt.Errorf("loading assessment %s: %w", a.AssessmentID, err)
		}
	}
	return nil
}
