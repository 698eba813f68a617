package sqlite

import "github.com/mesh-intelligence/athena/pkg/types"

// crossIndex holds the two derived lookup structures maintained on every
// committed write: risk assessments grouped by startup in insertion order,
// and benchmark rows by natural key. The index is guarded by the backend's
// RWMutex; it owns its records, so table code hands it private clones and
// reads hand clones back out.
type crossIndex struct {
	riskByStartup  map[string][]*types.RiskAssessment
	benchmarkByKey map[types.BenchmarkKey]*types.BenchmarkRow
}

func newCrossIndex() *crossIndex {
	return &crossIndex{
		riskByStartup:  make(map[string][]*types.RiskAssessment),
		benchmarkByKey: make(map[types.BenchmarkKey]*types.BenchmarkRow),
	}
}

// addAssessment appends an assessment to its startup's history. Assessments
// are append-only, so insertion order is chronological.
func (x *crossIndex) addAssessment(a *types.RiskAssessment) {
	x.riskByStartup[a.StartupID] = append(x.riskByStartup[a.StartupID], a)
}

// history returns the assessments recorded for a startup, oldest first.
// The returned records are clones; callers may mutate them freely.
func (x *crossIndex) history(startupID string) []*types.RiskAssessment {
	stored := x.riskByStartup[startupID]
	out := make([]*types.RiskAssessment, len(stored))
	for i, a := range stored {
		out[i] = a.Clone()
	}
	return out
}

// putBenchmark replaces the row for its key wholesale.
func (x *crossIndex) putBenchmark(b *types.BenchmarkRow) {
	x.benchmarkByKey[b.Key()] = b
}

// benchmark returns a clone of the row for the key, or nil when absent.
func (x *crossIndex) benchmark(key types.BenchmarkKey) *types.BenchmarkRow {
	row, ok := x.benchmarkByKey[key]
	if !ok {
		return nil
	}
	return row.Clone()
}
