package types

// FieldKind is the semantic type of a field, used by the validation engine
// to pick range rules and by the CLI for display.
type FieldKind string

// Semantic field kinds.
const (
	KindText      FieldKind = "text"      // free or identifying text
	KindMoney     FieldKind = "money"     // monetary real, >= 0 when present
	KindReal      FieldKind = "real"      // unconstrained real
	KindCount     FieldKind = "count"     // non-negative integer
	KindRatio     FieldKind = "ratio"     // real in [0,1] when present
	KindTimestamp FieldKind = "timestamp" // store-assigned instant
	KindRecords   FieldKind = "records"   // ordered sequence of sub-records
)

// FieldDescriptor describes one field of an entity type: its wire name, its
// semantic kind, and whether a write must supply it.
type FieldDescriptor struct {
	Name     string    `json:"name"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
}

// profileFields lists StartupProfile fields in wire order.
var profileFields = []FieldDescriptor{
	{Name: "startup_id", Kind: KindText, Required: true},
	{Name: "company_name", Kind: KindText, Required: true},
	{Name: "founders", Kind: KindRecords, Required: false},
	{Name: "problem_statement", Kind: KindText, Required: false},
	{Name: "solution_description", Kind: KindText, Required: false},
	{Name: "market_data", Kind: KindRecords, Required: false},
	{Name: "traction_metrics", Kind: KindRecords, Required: false},
	{Name: "financials", Kind: KindRecords, Required: false},
	{Name: "created_at", Kind: KindTimestamp, Required: false},
	{Name: "updated_at", Kind: KindTimestamp, Required: false},
}

// benchmarkFields lists BenchmarkRow fields in wire order.
var benchmarkFields = []FieldDescriptor{
	{Name: "sector", Kind: KindText, Required: true},
	{Name: "stage", Kind: KindText, Required: true},
	{Name: "metric_name", Kind: KindText, Required: true},
	{Name: "p25", Kind: KindReal, Required: false},
	{Name: "p50", Kind: KindReal, Required: false},
	{Name: "p75", Kind: KindReal, Required: false},
	{Name: "p90", Kind: KindReal, Required: false},
	{Name: "updated_at", Kind: KindTimestamp, Required: false},
}

// assessmentFields lists RiskAssessment fields in wire order.
var assessmentFields = []FieldDescriptor{
	{Name: "assessment_id", Kind: KindText, Required: false},
	{Name: "startup_id", Kind: KindText, Required: true},
	{Name: "risk_category", Kind: KindText, Required: true},
	{Name: "risk_score", Kind: KindRatio, Required: true},
	{Name: "risk_description", Kind: KindText, Required: false},
	{Name: "evidence", Kind: KindRecords, Required: false},
	{Name: "created_at", Kind: KindTimestamp, Required: false},
}

// FieldsOf returns the ordered field descriptors for a standard table name.
// Returns ErrTableNotFound for an unknown name. The returned slice is a copy;
// callers may not mutate the catalog.
func FieldsOf(table string) ([]FieldDescriptor, error) {
	var src []FieldDescriptor
	switch table {
	case ProfilesTable:
		src = profileFields
	case BenchmarksTable:
		src = benchmarkFields
	case AssessmentsTable:
		src = assessmentFields
	default:
		return nil, ErrTableNotFound
	}
	out := make([]FieldDescriptor, len(src))
	copy(out, src)
	return out, nil
}
