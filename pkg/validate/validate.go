// Package validate implements the pure validation engine for Athena records.
// Per-field rules are declared with ozzo-validation; cross-field invariants
// (market funnel ordering, percentile ordering) are checked explicitly.
// Validation is deterministic and performs no I/O: identical input always
// yields an identical ValidationResult, with every violated rule reported in
// one pass.
package validate

import (
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mesh-intelligence/athena/pkg/types"
)

// Options tunes soft-invariant handling.
type Options struct {
	// StrictRatios hardens the risk_score [0,1] check from a warning into a
	// rejection. Maps to the strict_ratio_validation config key.
	StrictRatios bool
}

// Record validates a candidate record for the named table. Returns
// ErrTableNotFound for an unknown table name and ErrInvalidData when the
// record's concrete type does not match the table.
func Record(table string, record any, opts Options) (types.ValidationResult, error) {
	switch table {
	case types.ProfilesTable:
		p, ok := record.(*types.StartupProfile)
		if !ok {
			return types.ValidationResult{}, types.ErrInvalidData
		}
		return Profile(p, opts), nil
	case types.BenchmarksTable:
		b, ok := record.(*types.BenchmarkRow)
		if !ok {
			return types.ValidationResult{}, types.ErrInvalidData
		}
		return Benchmark(b, opts), nil
	case types.AssessmentsTable:
		a, ok := record.(*types.RiskAssessment)
		if !ok {
			return types.ValidationResult{}, types.ErrInvalidData
		}
		return Assessment(a, opts), nil
	default:
		return types.ValidationResult{}, types.ErrTableNotFound
	}
}

// appendOzzo flattens an ozzo-validation error into violations, sorted by
// field name so the result ordering is deterministic. prefix is prepended to
// each field path ("market_data." etc).
func appendOzzo(vs []types.Violation, prefix string, err error) []types.Violation {
	if err == nil {
		return vs
	}
	errs, ok := err.(validation.Errors)
	if !ok {
		return append(vs, types.Violation{
			Field:   strings.TrimSuffix(prefix, "."),
			Message: err.Error(),
		})
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		vs = append(vs, types.Violation{Field: prefix + f, Message: errs[f].Error()})
	}
	return vs
}
