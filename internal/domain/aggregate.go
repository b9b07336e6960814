package domain

import (
	"github.com/shopspring/decimal"
)

// IlliquidAsset is a sellable holding that is not part of the corpus
type IlliquidAsset struct {
	Name             string          `json:"name"`
	CurrentValue     decimal.Decimal `json:"currentValue"`
	AnnualReturnRate decimal.Decimal `json:"annualReturnRate"` // percent
}

// FreedCashflow is a recurring payment that stops before retirement
// and can be redirected into investments from StartYear onward.
type FreedCashflow struct {
	Name          string          `json:"name"`
	Source        string          `json:"source"` // loan, insurance
	StartYear     int             `json:"startYear"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
}

// RetirementNeeds are the recurring obligations that continue after retirement
type RetirementNeeds struct {
	MonthlyExpenses    decimal.Decimal `json:"monthlyExpenses"` // today's money
	ContinuingEMIs     decimal.Decimal `json:"continuingEmis"`
	ContinuingPremiums decimal.Decimal `json:"continuingPremiums"`
}

// RetirementIncome are the non-corpus income streams after retirement.
// Amounts are today's monthly values; rental grows at RentalGrowth, annuity is flat.
type RetirementIncome struct {
	MonthlyRental  decimal.Decimal `json:"monthlyRental"`
	RentalGrowth   decimal.Decimal `json:"rentalGrowth"` // percent
	MonthlyAnnuity decimal.Decimal `json:"monthlyAnnuity"`
}

// AggregatedInput is the normalized view of a plan consumed by every engine component
type AggregatedInput struct {
	AsOfYear   int                `json:"asOfYear"`
	Parameters PlanningParameters `json:"parameters"`

	Balances       []InstrumentBalance `json:"balances"`
	Illiquid       InstrumentBalance   `json:"illiquid"`
	IlliquidAssets []IlliquidAsset     `json:"illiquidAssets"`
	Events         []CashflowEvent     `json:"events"`

	Maturities      MaturitySummary  `json:"maturities"`
	FreedCashflows  []FreedCashflow  `json:"freedCashflows"`
	Needs           RetirementNeeds  `json:"needs"`
	Income          RetirementIncome `json:"income"`
	MonthlySalary   decimal.Decimal  `json:"monthlySalary"`
	Warnings        []string         `json:"warnings"`
	RequestedWhatIf []ScenarioSpec   `json:"requestedWhatIf"`
}

// Balance returns the opening balance record for a bucket
func (a *AggregatedInput) Balance(t InstrumentType) InstrumentBalance {
	for _, b := range a.Balances {
		if b.Type == t {
			return b
		}
	}
	return InstrumentBalance{Type: t}
}

// CurrentCorpus sums the opening balances of all liquid buckets
func (a *AggregatedInput) CurrentCorpus() decimal.Decimal {
	total := decimal.Zero
	for _, b := range a.Balances {
		total = total.Add(b.OpeningBalance)
	}
	return total
}

// CurrentMonthlySIP sums the monthly contributions of all liquid buckets
func (a *AggregatedInput) CurrentMonthlySIP() decimal.Decimal {
	total := decimal.Zero
	for _, b := range a.Balances {
		total = total.Add(b.MonthlyContribution)
	}
	return total
}
