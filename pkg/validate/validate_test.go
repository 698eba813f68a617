package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/athena/pkg/types"
)

func f64(v float64) *float64 { return &v }

// fieldNames extracts the field paths from a violation list.
func fieldNames(vs []types.Violation) []string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = v.Field
	}
	return names
}

func TestProfileValid(t *testing.T) {
	p := &types.StartupProfile{
		StartupID:   "s-1",
		CompanyName: "Acme Analytics",
		Founders: []types.Founder{
			{Name: "Ada", ExperienceYears: 8},
		},
		MarketData:      types.MarketData{TAM: f64(1e9), SAM: f64(1e8), SOM: f64(1e7)},
		TractionMetrics: types.TractionMetrics{MRR: f64(5000), ChurnRate: f64(0.04)},
		Financials:      types.Financials{Revenue: f64(60000), BurnRate: f64(20000)},
	}

	res := Profile(p, Options{})
	assert.True(t, res.OK())
	assert.Empty(t, res.Warnings)
}

func TestProfileReportsAllViolationsInOnePass(t *testing.T) {
	// Several independent problems at once: the result must name every one.
	p := &types.StartupProfile{
		StartupID:   "s-1",
		CompanyName: "", // required
		Founders: []types.Founder{
			{Name: ""}, // required
		},
		MarketData:      types.MarketData{TAM: f64(100), SAM: f64(500)}, // funnel inverted
		TractionMetrics: types.TractionMetrics{MRR: f64(-10), ChurnRate: f64(1.5)},
	}

	res := Profile(p, Options{})
	require.False(t, res.OK())

	fields := fieldNames(res.Violations)
	assert.Contains(t, fields, "company_name")
	assert.Contains(t, fields, "founders[0].name")
	assert.Contains(t, fields, "market_data")
	assert.Contains(t, fields, "traction_metrics.mrr")
	assert.Contains(t, fields, "traction_metrics.churn_rate")
	assert.Len(t, res.Violations, 5)
}

func TestProfileAbsentOptionalFieldsPass(t *testing.T) {
	// A minimal profile: absent numerics are not zero, so range rules do
	// not fire.
	p := &types.StartupProfile{StartupID: "s-1", CompanyName: "Acme Analytics"}

	res := Profile(p, Options{})
	assert.True(t, res.OK())
}

func TestProfilePreviousFundingRules(t *testing.T) {
	p := &types.StartupProfile{
		StartupID:   "s-1",
		CompanyName: "Acme Analytics",
		Financials: types.Financials{
			PreviousFunding: []types.FundingRound{
				{Round: "", Amount: f64(-100)},
			},
		},
	}

	res := Profile(p, Options{})
	require.False(t, res.OK())
	fields := fieldNames(res.Violations)
	assert.Contains(t, fields, "financials.previous_funding[0].round")
	assert.Contains(t, fields, "financials.previous_funding[0].amount")
}

func TestProfileDeterministic(t *testing.T) {
	p := &types.StartupProfile{
		CompanyName:     "",
		MarketData:      types.MarketData{TAM: f64(-1), SAM: f64(-2), SOM: f64(-3)},
		TractionMetrics: types.TractionMetrics{CAC: f64(-5), LTV: f64(-6)},
	}

	first := Profile(p, Options{})
	second := Profile(p, Options{})
	assert.Equal(t, first, second)
}

func TestBenchmarkValid(t *testing.T) {
	b := &types.BenchmarkRow{
		Sector: "saas", Stage: "seed", MetricName: "mrr_growth_rate",
		P25: f64(10), P50: f64(20), P75: f64(35), P90: f64(50),
	}
	res := Benchmark(b, Options{})
	assert.True(t, res.OK())
}

func TestBenchmarkPercentileOrdering(t *testing.T) {
	b := &types.BenchmarkRow{
		Sector: "saas", Stage: "seed", MetricName: "churn_rate",
		P25: f64(15), P50: f64(10), P75: f64(7), P90: f64(5),
	}
	res := Benchmark(b, Options{})
	require.False(t, res.OK())
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "p25", res.Violations[0].Field)
	assert.Contains(t, res.Violations[0].Message, "p25 <= p50 <= p75 <= p90")
}

func TestBenchmarkPartialPercentilesAccepted(t *testing.T) {
	b := &types.BenchmarkRow{
		Sector: "saas", Stage: "seed", MetricName: "churn_rate",
		P50: f64(7),
	}
	res := Benchmark(b, Options{})
	assert.True(t, res.OK())
}

func TestBenchmarkRequiredKeyComponents(t *testing.T) {
	b := &types.BenchmarkRow{Sector: "saas"}
	res := Benchmark(b, Options{})
	require.False(t, res.OK())
	fields := fieldNames(res.Violations)
	assert.Contains(t, fields, "stage")
	assert.Contains(t, fields, "metric_name")
	assert.NotContains(t, fields, "sector")
}

func TestAssessmentScoreWarningByDefault(t *testing.T) {
	a := &types.RiskAssessment{
		StartupID:    "s-1",
		RiskCategory: types.RiskCategoryMarket,
		RiskScore:    85, // unnormalized model output
	}

	res := Assessment(a, Options{})
	assert.True(t, res.OK(), "out-of-range score must not reject by default")
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "risk_score", res.Warnings[0].Field)
}

func TestAssessmentScoreStrictRejects(t *testing.T) {
	a := &types.RiskAssessment{
		StartupID:    "s-1",
		RiskCategory: types.RiskCategoryMarket,
		RiskScore:    -0.5,
	}

	res := Assessment(a, Options{StrictRatios: true})
	require.False(t, res.OK())
	assert.Empty(t, res.Warnings)
	assert.Equal(t, "risk_score", res.Violations[0].Field)
}

func TestAssessmentRequiredFields(t *testing.T) {
	a := &types.RiskAssessment{RiskScore: 0.5}
	res := Assessment(a, Options{})
	require.False(t, res.OK())
	fields := fieldNames(res.Violations)
	assert.Contains(t, fields, "startup_id")
	assert.Contains(t, fields, "risk_category")
}

func TestRecordDispatch(t *testing.T) {
	t.Run("profile", func(t *testing.T) {
		res, err := Record(types.ProfilesTable, &types.StartupProfile{StartupID: "s-1", CompanyName: "Acme"}, Options{})
		require.NoError(t, err)
		assert.True(t, res.OK())
	})

	t.Run("benchmark", func(t *testing.T) {
		res, err := Record(types.BenchmarksTable, &types.BenchmarkRow{Sector: "saas", Stage: "seed", MetricName: "m"}, Options{})
		require.NoError(t, err)
		assert.True(t, res.OK())
	})

	t.Run("assessment", func(t *testing.T) {
		res, err := Record(types.AssessmentsTable, &types.RiskAssessment{StartupID: "s-1", RiskCategory: "team", RiskScore: 0.2}, Options{})
		require.NoError(t, err)
		assert.True(t, res.OK())
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := Record("nonsense", &types.StartupProfile{}, Options{})
		assert.True(t, errors.Is(err, types.ErrTableNotFound))
	})

	t.Run("wrong record type", func(t *testing.T) {
		_, err := Record(types.ProfilesTable, &types.BenchmarkRow{}, Options{})
		assert.True(t, errors.Is(err, types.ErrInvalidData))
	})
}
