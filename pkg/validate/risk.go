package validate

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/mesh-intelligence/athena/pkg/types"
)

// Assessment validates a RiskAssessment candidate. The risk_score [0,1]
// range is a soft invariant: out-of-range scores are accepted with a warning
// unless Options.StrictRatios is set, because upstream scoring models may
// emit unnormalized values and dropping their output silently would lose
// assessment history.
func Assessment(a *types.RiskAssessment, opts Options) types.ValidationResult {
	var res types.ValidationResult

	res.Violations = appendOzzo(res.Violations, "", validation.ValidateStruct(a,
		validation.Field(&a.StartupID, validation.Required),
		validation.Field(&a.RiskCategory, validation.Required),
	))

	if !a.ScoreInRange() {
		v := types.Violation{
			Field:   "risk_score",
			Message: "expected range [0,1]",
		}
		if opts.StrictRatios {
			res.Violations = append(res.Violations, v)
		} else {
			res.Warnings = append(res.Warnings, v)
		}
	}

	return res
}
