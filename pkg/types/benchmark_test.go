package types

import "testing"

func TestBenchmarkKeyEmpty(t *testing.T) {
	tests := []struct {
		name string
		key  BenchmarkKey
		want bool
	}{
		{"complete key", BenchmarkKey{"saas", "seed", "churn_rate"}, false},
		{"missing sector", BenchmarkKey{"", "seed", "churn_rate"}, true},
		{"missing stage", BenchmarkKey{"saas", "", "churn_rate"}, true},
		{"missing metric", BenchmarkKey{"saas", "seed", ""}, true},
		{"zero key", BenchmarkKey{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.Empty(); got != tt.want {
				t.Fatalf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBenchmarkRowPercentilesOrdered(t *testing.T) {
	tests := []struct {
		name string
		row  BenchmarkRow
		want bool
	}{
		{
			name: "ascending percentiles are ordered",
			row:  BenchmarkRow{P25: f64(10), P50: f64(20), P75: f64(35), P90: f64(50)},
			want: true,
		},
		{
			name: "equal percentiles are ordered",
			row:  BenchmarkRow{P25: f64(5), P50: f64(5), P75: f64(5), P90: f64(5)},
			want: true,
		},
		{
			name: "descending percentiles violate",
			row:  BenchmarkRow{P25: f64(15), P50: f64(10), P75: f64(7), P90: f64(5)},
			want: false,
		},
		{
			name: "single inversion violates",
			row:  BenchmarkRow{P25: f64(10), P50: f64(30), P75: f64(20), P90: f64(50)},
			want: false,
		},
		{
			name: "partial row is ordered by definition",
			row:  BenchmarkRow{P25: f64(50), P50: f64(10)},
			want: true,
		},
		{
			name: "empty row is ordered",
			row:  BenchmarkRow{},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.PercentilesOrdered(); got != tt.want {
				t.Fatalf("PercentilesOrdered() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBenchmarkRowClone(t *testing.T) {
	b := &BenchmarkRow{
		Sector: "saas", Stage: "seed", MetricName: "churn_rate",
		P25: f64(5), P50: f64(7), P75: f64(10), P90: f64(15),
	}
	cp := b.Clone()
	*cp.P25 = 99
	if *b.P25 != 5 {
		t.Fatalf("clone aliased P25")
	}
	if cp.Key() != b.Key() {
		t.Fatalf("clone key mismatch: %v != %v", cp.Key(), b.Key())
	}
}
