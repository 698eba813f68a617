package types

import "time"

// Risk categories produced by the upstream scoring models. RiskCategory is
// free text; these are the values the scoring pipeline currently emits.
const (
	RiskCategoryMarket    = "market"
	RiskCategoryTeam      = "team"
	RiskCategoryFinancial = "financial"
	RiskCategoryTechnical = "technical"
	RiskCategoryExecution = "execution"
)

// RiskAssessment is one scoring result for a startup. Assessments are
// append-only: they are never mutated after insertion, newer assessments
// supersede older ones by recency, and the history is retained.
//
// StartupID is an advisory reference: an assessment may arrive before the
// profile it points at, since ingestion order is not guaranteed. It is
// recorded as-is for later reconciliation.
type RiskAssessment struct {
	AssessmentID    string    `json:"assessment_id"`
	StartupID       string    `json:"startup_id"`
	RiskCategory    string    `json:"risk_category"`
	RiskScore       float64   `json:"risk_score"`
	RiskDescription string    `json:"risk_description,omitempty"`
	Evidence        []string  `json:"evidence"`
	CreatedAt       time.Time `json:"created_at"`
}

// ScoreInRange reports whether the risk score lies in the expected [0,1]
// range. Out-of-range scores are accepted with a warning by default because
// upstream models may emit unnormalized values.
func (a *RiskAssessment) ScoreInRange() bool {
	return a.RiskScore >= 0 && a.RiskScore <= 1
}

// Clone returns a copy of the assessment.
func (a *RiskAssessment) Clone() *RiskAssessment {
	cp := *a
	cp.Evidence = cloneStrings(a.Evidence)
	return &cp
}
