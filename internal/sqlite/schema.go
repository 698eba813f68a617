// Package sqlite implements the SQLite storage backend for the Athena
// analytical record store. SQLite is the query engine; JSONL files in the
// data directory are the durable interchange format, loaded on Attach and
// rewritten atomically on write.
package sqlite

// Schema DDL for all tables. Nested composite values (founders, market_data,
// traction_metrics, financials, evidence) are stored as JSON text columns so
// multi-field invariants stay atomic per record.
const (
	createProfiles = `CREATE TABLE startup_profiles (
    startup_id TEXT PRIMARY KEY,
    company_name TEXT NOT NULL,
    founders TEXT NOT NULL,
    problem_statement TEXT,
    solution_description TEXT,
    market_data TEXT NOT NULL,
    traction_metrics TEXT NOT NULL,
    financials TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createBenchmarks = `CREATE TABLE benchmarks (
    sector TEXT NOT NULL,
    stage TEXT NOT NULL,
    metric_name TEXT NOT NULL,
    p25 REAL,
    p50 REAL,
    p75 REAL,
    p90 REAL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (sector, stage, metric_name)
);`

	// seq records insertion order: assessments are append-only and the
	// risk_by_startup index returns them chronologically.
	createAssessments = `CREATE TABLE risk_assessments (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    assessment_id TEXT NOT NULL UNIQUE,
    startup_id TEXT NOT NULL,
    risk_category TEXT NOT NULL,
    risk_score REAL NOT NULL,
    risk_description TEXT,
    evidence TEXT NOT NULL,
    created_at TEXT NOT NULL
);`

	createAssessmentsStartupIndex = `CREATE INDEX idx_assessments_startup
    ON risk_assessments (startup_id);`
)

// allSchemas lists the DDL statements executed on Attach, in order.
var allSchemas = []string{
	createProfiles,
	createBenchmarks,
	createAssessments,
	createAssessmentsStartupIndex,
}
