package types

// Standard table names for the Athena warehouse.
const (
	ProfilesTable    = "startup_profiles"
	BenchmarksTable  = "benchmarks"
	AssessmentsTable = "risk_assessments"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	ProfilesTable,
	BenchmarksTable,
	AssessmentsTable,
}
