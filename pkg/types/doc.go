// Package types defines the Warehouse and table interfaces, the three
// analytical entity types (StartupProfile, BenchmarkRow, RiskAssessment),
// the field-descriptor catalog, and standard error values for the Athena
// record store.
package types
