package validate

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mesh-intelligence/athena/pkg/types"
)

// Profile validates a StartupProfile candidate: required key and name,
// non-negative monetary and count fields, churn_rate in [0,1], per-founder
// rules, and the tam >= sam >= som funnel invariant.
func Profile(p *types.StartupProfile, _ Options) types.ValidationResult {
	var res types.ValidationResult

	res.Violations = appendOzzo(res.Violations, "", validation.ValidateStruct(p,
		validation.Field(&p.StartupID, validation.Required),
		validation.Field(&p.CompanyName, validation.Required),
	))

	for i := range p.Founders {
		f := &p.Founders[i]
		prefix := fmt.Sprintf("founders[%d].", i)
		res.Violations = appendOzzo(res.Violations, prefix, validation.ValidateStruct(f,
			validation.Field(&f.Name, validation.Required),
			validation.Field(&f.ExperienceYears, validation.Min(0)),
		))
	}

	m := &p.MarketData
	res.Violations = appendOzzo(res.Violations, "market_data.", validation.ValidateStruct(m,
		validation.Field(&m.TAM, validation.Min(0.0)),
		validation.Field(&m.SAM, validation.Min(0.0)),
		validation.Field(&m.SOM, validation.Min(0.0)),
	))
	if !m.FunnelOrdered() {
		res.Violations = append(res.Violations, types.Violation{
			Field:   "market_data",
			Message: "tam >= sam >= som must hold",
		})
	}

	tm := &p.TractionMetrics
	res.Violations = appendOzzo(res.Violations, "traction_metrics.", validation.ValidateStruct(tm,
		validation.Field(&tm.MRR, validation.Min(0.0)),
		validation.Field(&tm.ARR, validation.Min(0.0)),
		validation.Field(&tm.CAC, validation.Min(0.0)),
		validation.Field(&tm.LTV, validation.Min(0.0)),
		validation.Field(&tm.ChurnRate, validation.Min(0.0), validation.Max(1.0)),
		validation.Field(&tm.UserCount, validation.Min(0)),
	))

	fin := &p.Financials
	res.Violations = appendOzzo(res.Violations, "financials.", validation.ValidateStruct(fin,
		validation.Field(&fin.Revenue, validation.Min(0.0)),
		validation.Field(&fin.BurnRate, validation.Min(0.0)),
		validation.Field(&fin.FundingRequested, validation.Min(0.0)),
		validation.Field(&fin.Valuation, validation.Min(0.0)),
		validation.Field(&fin.RunwayMonths, validation.Min(0.0)),
	))
	for i := range fin.PreviousFunding {
		r := &fin.PreviousFunding[i]
		prefix := fmt.Sprintf("financials.previous_funding[%d].", i)
		res.Violations = appendOzzo(res.Violations, prefix, validation.ValidateStruct(r,
			validation.Field(&r.Round, validation.Required),
			validation.Field(&r.Amount, validation.Min(0.0)),
		))
	}

	return res
}
