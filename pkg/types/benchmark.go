package types

import "time"

// BenchmarkKey is the natural key of a benchmark row: one row exists per
// (sector, stage, metric) triple.
type BenchmarkKey struct {
	Sector     string `json:"sector"`
	Stage      string `json:"stage"`
	MetricName string `json:"metric_name"`
}

// Empty reports whether any key component is missing.
func (k BenchmarkKey) Empty() bool {
	return k.Sector == "" || k.Stage == "" || k.MetricName == ""
}

// BenchmarkRow holds percentile values for one metric within a sector/stage
// cohort. Percentiles are pointers so a partially computed row is
// representable; when all four are present they must satisfy
// p25 <= p50 <= p75 <= p90. UpdatedAt advances on every write.
type BenchmarkRow struct {
	Sector     string    `json:"sector"`
	Stage      string    `json:"stage"`
	MetricName string    `json:"metric_name"`
	P25        *float64  `json:"p25"`
	P50        *float64  `json:"p50"`
	P75        *float64  `json:"p75"`
	P90        *float64  `json:"p90"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Key returns the natural key of the row.
func (b *BenchmarkRow) Key() BenchmarkKey {
	return BenchmarkKey{Sector: b.Sector, Stage: b.Stage, MetricName: b.MetricName}
}

// PercentilesOrdered reports whether p25 <= p50 <= p75 <= p90. The check only
// applies when all four percentiles are present; a partial row is ordered by
// definition.
func (b *BenchmarkRow) PercentilesOrdered() bool {
	if b.P25 == nil || b.P50 == nil || b.P75 == nil || b.P90 == nil {
		return true
	}
	return *b.P25 <= *b.P50 && *b.P50 <= *b.P75 && *b.P75 <= *b.P90
}

// Clone returns a copy of the row.
func (b *BenchmarkRow) Clone() *BenchmarkRow {
	cp := *b
	cp.P25 = clonePtr(b.P25)
	cp.P50 = clonePtr(b.P50)
	cp.P75 = clonePtr(b.P75)
	cp.P90 = clonePtr(b.P90)
	return &cp
}
