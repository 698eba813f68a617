package types

import "time"

// Founder describes one founding team member of a startup. Only Name is
// required; the remaining fields depend on what the source documents yield.
type Founder struct {
	Name              string   `json:"name"`
	Background        string   `json:"background,omitempty"`
	LinkedInURL       string   `json:"linkedin_url,omitempty"`
	ExperienceYears   int      `json:"experience_years"`
	PreviousCompanies []string `json:"previous_companies,omitempty"`
	Education         string   `json:"education,omitempty"`
	Role              string   `json:"role,omitempty"`
}

// MarketData holds market-sizing figures. Monetary values are pointers so an
// absent figure is distinguishable from zero. When tam, sam, and som are all
// present they must satisfy tam >= sam >= som.
type MarketData struct {
	TAM              *float64 `json:"tam"`
	SAM              *float64 `json:"sam"`
	SOM              *float64 `json:"som"`
	TargetMarket     string   `json:"target_market,omitempty"`
	MarketGrowthRate *float64 `json:"market_growth_rate,omitempty"`
}

// FunnelOrdered reports whether tam >= sam >= som holds. Absent values are
// exempted from the comparison.
func (m MarketData) FunnelOrdered() bool {
	if m.TAM != nil && m.SAM != nil && *m.TAM < *m.SAM {
		return false
	}
	if m.SAM != nil && m.SOM != nil && *m.SAM < *m.SOM {
		return false
	}
	if m.TAM != nil && m.SOM != nil && *m.TAM < *m.SOM {
		return false
	}
	return true
}

// TractionMetrics holds growth and revenue metrics. ChurnRate is a ratio in
// [0,1]; UserCount is a non-negative count.
type TractionMetrics struct {
	MRR        *float64 `json:"mrr"`
	ARR        *float64 `json:"arr"`
	CAC        *float64 `json:"cac"`
	LTV        *float64 `json:"ltv"`
	ChurnRate  *float64 `json:"churn_rate"`
	UserCount  *int64   `json:"user_count"`
	GrowthRate *float64 `json:"growth_rate,omitempty"`
}

// FundingRound records one prior financing event.
type FundingRound struct {
	Round     string   `json:"round"`
	Amount    *float64 `json:"amount"`
	Date      string   `json:"date,omitempty"`
	Investors []string `json:"investors,omitempty"`
}

// Financials holds financial position figures, all non-negative when present.
type Financials struct {
	Revenue          *float64       `json:"revenue"`
	BurnRate         *float64       `json:"burn_rate"`
	FundingRequested *float64       `json:"funding_requested"`
	Valuation        *float64       `json:"valuation"`
	RunwayMonths     *float64       `json:"runway_months"`
	PreviousFunding  []FundingRound `json:"previous_funding,omitempty"`
}

// StartupProfile is the canonical record for one startup. StartupID is the
// natural key. CreatedAt is set once at creation; UpdatedAt advances on every
// mutation and is never earlier than CreatedAt.
type StartupProfile struct {
	StartupID           string          `json:"startup_id"`
	CompanyName         string          `json:"company_name"`
	Founders            []Founder       `json:"founders"`
	ProblemStatement    *string         `json:"problem_statement"`
	SolutionDescription *string         `json:"solution_description"`
	MarketData          MarketData      `json:"market_data"`
	TractionMetrics     TractionMetrics `json:"traction_metrics"`
	Financials          Financials      `json:"financials"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// Key returns the natural key of the profile.
func (p *StartupProfile) Key() string {
	return p.StartupID
}

// Clone returns a deep copy of the profile. The store clones records on write
// so later caller mutations cannot alias stored state.
func (p *StartupProfile) Clone() *StartupProfile {
	cp := *p
	cp.Founders = make([]Founder, len(p.Founders))
	copy(cp.Founders, p.Founders)
	for i, f := range p.Founders {
		cp.Founders[i].PreviousCompanies = cloneStrings(f.PreviousCompanies)
	}
	cp.ProblemStatement = clonePtr(p.ProblemStatement)
	cp.SolutionDescription = clonePtr(p.SolutionDescription)
	cp.MarketData.TAM = clonePtr(p.MarketData.TAM)
	cp.MarketData.SAM = clonePtr(p.MarketData.SAM)
	cp.MarketData.SOM = clonePtr(p.MarketData.SOM)
	cp.MarketData.MarketGrowthRate = clonePtr(p.MarketData.MarketGrowthRate)
	cp.TractionMetrics.MRR = clonePtr(p.TractionMetrics.MRR)
	cp.TractionMetrics.ARR = clonePtr(p.TractionMetrics.ARR)
	cp.TractionMetrics.CAC = clonePtr(p.TractionMetrics.CAC)
	cp.TractionMetrics.LTV = clonePtr(p.TractionMetrics.LTV)
	cp.TractionMetrics.ChurnRate = clonePtr(p.TractionMetrics.ChurnRate)
	cp.TractionMetrics.UserCount = clonePtr(p.TractionMetrics.UserCount)
	cp.TractionMetrics.GrowthRate = clonePtr(p.TractionMetrics.GrowthRate)
	cp.Financials.Revenue = clonePtr(p.Financials.Revenue)
	cp.Financials.BurnRate = clonePtr(p.Financials.BurnRate)
	cp.Financials.FundingRequested = clonePtr(p.Financials.FundingRequested)
	cp.Financials.Valuation = clonePtr(p.Financials.Valuation)
	cp.Financials.RunwayMonths = clonePtr(p.Financials.RunwayMonths)
	cp.Financials.PreviousFunding = make([]FundingRound, len(p.Financials.PreviousFunding))
	copy(cp.Financials.PreviousFunding, p.Financials.PreviousFunding)
	for i, r := range p.Financials.PreviousFunding {
		cp.Financials.PreviousFunding[i].Amount = clonePtr(r.Amount)
		cp.Financials.PreviousFunding[i].Investors = cloneStrings(r.Investors)
	}
	return &cp
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	cp := make([]string, len(s))
	copy(cp, s)
	return cp
}
