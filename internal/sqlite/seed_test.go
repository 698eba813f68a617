// Tests for default benchmark seeding.
package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/athena/pkg/types"
)

func TestSeedDefaultBenchmarksOnFirstAttach(t *testing.T) {
	b, _ := newTestBackend(t)
	benchmarks, _ := b.Benchmarks()

	rows, err := benchmarks.List(types.BenchmarkFilter{Sector: "saas", Stage: "seed"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != len(defaultBenchmarks) {
		t.Fatalf("expected %d seeded rows, got %d", len(defaultBenchmarks), len(rows))
	}

	// Every seeded row satisfies percentile ordering.
	for _, row := range rows {
		if !row.PercentilesOrdered() {
			t.Errorf("seeded row %s violates percentile ordering: %+v", row.MetricName, row)
		}
	}

	// Spot-check churn_rate: ascending distribution percentiles.
	got, err := benchmarks.Get(types.BenchmarkKey{Sector: "saas", Stage: "seed", MetricName: "churn_rate"})
	if err != nil {
		t.Fatalf("Get seeded churn_rate failed: %v", err)
	}
	if *got.P25 != 5 || *got.P90 != 15 {
		t.Errorf("unexpected churn_rate seed values: %+v", got)
	}
}

func TestSeedSkippedWhenDataPresent(t *testing.T) {
	tmpDir := t.TempDir()

	// Pre-populate the interchange file with a single row.
	row := types.BenchmarkRow{Sector: "fintech", Stage: "seed", MetricName: "churn_rate", P50: fptr(4)}
	line, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshaling fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, benchmarksJSONL), append(line, '\n'), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	b := NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	benchmarks, _ := b.Benchmarks()
	all, err := benchmarks.List(types.BenchmarkFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected only the loaded row (no reseeding), got %d rows", len(all))
	}
	if all[0].Sector != "fintech" {
		t.Errorf("unexpected row: %+v", all[0])
	}
}

func TestSeededRowsReachInterchangeFile(t *testing.T) {
	_, tmpDir := newTestBackend(t)

	lines, err := readJSONL(filepath.Join(tmpDir, benchmarksJSONL))
	if err != nil {
		t.Fatalf("readJSONL failed: %v", err)
	}
	if len(lines) != len(defaultBenchmarks) {
		t.Fatalf("expected %d seeded lines in JSONL, got %d", len(defaultBenchmarks), len(lines))
	}
}
