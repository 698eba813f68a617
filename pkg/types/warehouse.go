package types

import "errors"

// Warehouse defines backend-agnostic access to the analytical record store.
// Callers attach to a backend, access entity tables through the typed
// accessors, and detach when done.
type Warehouse interface {
	// Profiles returns the startup profile table.
	// Returns ErrDetached if the warehouse is not attached.
	Profiles() (ProfileTable, error)

	// Benchmarks returns the benchmark table.
	// Returns ErrDetached if the warehouse is not attached.
	Benchmarks() (BenchmarkTable, error)

	// Assessments returns the risk assessment table.
	// Returns ErrDetached if the warehouse is not attached.
	Assessments() (AssessmentTable, error)

	// Attach connects the Warehouse to the backend described by config.
	// Creates the DataDir if it does not exist. Idempotent on first call;
	// returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, table operations return ErrDetached.
	Detach() error
}

// ProfileTable stores StartupProfile records keyed by startup_id.
type ProfileTable interface {
	// Create inserts a new profile. Returns ErrDuplicateKey if the
	// startup_id already exists and *ValidationError if the record violates
	// the contract. On success created_at and updated_at are set to the same
	// instant and the stored record is returned.
	Create(p *StartupProfile) (*StartupProfile, error)

	// Upsert replaces the profile with the same startup_id, advancing
	// updated_at and preserving created_at. Behaves like Create when the key
	// does not exist.
	Upsert(p *StartupProfile) (*StartupProfile, error)

	// Get returns the profile with the given startup_id, or ErrNotFound.
	Get(startupID string) (*StartupProfile, error)

	// List returns profiles matching the filter. Each call runs a fresh
	// query; no cursor state is retained.
	List(filter ProfileFilter) ([]*StartupProfile, error)
}

// BenchmarkTable stores BenchmarkRow records keyed by (sector, stage,
// metric_name).
type BenchmarkTable interface {
	// Create inserts a new row. Returns ErrDuplicateKey if the key triple
	// already exists and *ValidationError on contract violation.
	Create(b *BenchmarkRow) (*BenchmarkRow, error)

	// Upsert replaces the row with the same key wholesale, advancing
	// updated_at. Behaves like Create when the key does not exist.
	Upsert(b *BenchmarkRow) (*BenchmarkRow, error)

	// Get returns the row for the key, or ErrNotFound. Served from the
	// benchmark_by_key index in O(1) average.
	Get(key BenchmarkKey) (*BenchmarkRow, error)

	// List returns rows matching the filter.
	List(filter BenchmarkFilter) ([]*BenchmarkRow, error)
}

// AssessmentTable stores append-only RiskAssessment records.
type AssessmentTable interface {
	// Append validates and inserts an assessment as a new immutable entry;
	// it never replaces. An empty assessment_id is assigned a generated
	// UUID v7. The referenced startup_id is not required to exist yet.
	// Returns the stored record plus any soft-invariant warnings.
	Append(a *RiskAssessment) (*RiskAssessment, []Violation, error)

	// Get returns the assessment with the given assessment_id, or
	// ErrNotFound.
	Get(assessmentID string) (*RiskAssessment, error)

	// History returns all assessments for a startup in insertion order,
	// served from the risk_by_startup index in O(1) average lookup.
	History(startupID string) ([]*RiskAssessment, error)

	// List returns assessments matching the filter.
	List(filter AssessmentFilter) ([]*RiskAssessment, error)
}

// ProfileFilter narrows ProfileTable.List. Zero values match everything.
type ProfileFilter struct {
	CompanyName string // exact match
	Limit       int
	Offset      int
}

// BenchmarkFilter narrows BenchmarkTable.List. Zero values match everything.
type BenchmarkFilter struct {
	Sector     string
	Stage      string
	MetricName string
	Limit      int
	Offset     int
}

// AssessmentFilter narrows AssessmentTable.List. Zero values match
// everything. Orphans restricts to assessments whose startup_id has no
// stored profile, for the external reconciliation pass.
type AssessmentFilter struct {
	StartupID    string
	RiskCategory string
	Orphans      bool
	Limit        int
	Offset       int
}

// Warehouse lifecycle errors.
var (
	ErrDetached        = errors.New("warehouse is detached")
	ErrAlreadyAttached = errors.New("warehouse is already attached")
	ErrTableNotFound   = errors.New("table not found")
)

// Table operation errors.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("natural key already exists")
	ErrInvalidID    = errors.New("invalid record ID")
	ErrInvalidData  = errors.New("invalid record data")
)
