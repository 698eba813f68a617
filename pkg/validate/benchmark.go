package validate

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mesh-intelligence/athena/pkg/types"
)

// Benchmark validates a BenchmarkRow candidate: non-empty natural-key
// components and percentile ordering. The key-shape check does not enforce
// global uniqueness; that is the store's job, since it needs the existing
// rows. A row violating percentile ordering is rejected, never silently
// reordered.
func Benchmark(b *types.BenchmarkRow, _ Options) types.ValidationResult {
	var res types.ValidationResult

	res.Violations = appendOzzo(res.Violations, "", validation.ValidateStruct(b,
		validation.Field(&b.Sector, validation.Required),
		validation.Field(&b.Stage, validation.Required),
		validation.Field(&b.MetricName, validation.Required),
	))

	if !b.PercentilesOrdered() {
		res.Violations = append(res.Violations, types.Violation{
			Field:   "p25",
			Message: "percentiles must satisfy p25 <= p50 <= p75 <= p90",
		})
	}

	return res
}
