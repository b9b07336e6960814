package domain

import (
	"github.com/shopspring/decimal"
)

// InstrumentType identifies a corpus bucket tracked by the projector
type InstrumentType string

const (
	InstrumentPPF         InstrumentType = "PPF"
	InstrumentEPF         InstrumentType = "EPF"
	InstrumentMutualFund  InstrumentType = "MUTUAL_FUND"
	InstrumentOtherLiquid InstrumentType = "OTHER_LIQUID"
	InstrumentIlliquid    InstrumentType = "ILLIQUID"
)

// LiquidInstruments lists the buckets that make up the corpus, in projection order
func LiquidInstruments() []InstrumentType {
	return []InstrumentType{InstrumentPPF, InstrumentEPF, InstrumentMutualFund, InstrumentOtherLiquid}
}

// RateReductionEligible reports whether scheduled rate cuts apply to the bucket.
// Equity-like buckets are unaffected.
func (t InstrumentType) RateReductionEligible() bool {
	switch t {
	case InstrumentPPF, InstrumentEPF, InstrumentOtherLiquid:
		return true
	}
	return false
}

// InstrumentBalance is the opening state of one bucket
type InstrumentBalance struct {
	Type                InstrumentType  `json:"type"`
	OpeningBalance      decimal.Decimal `json:"openingBalance"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	AnnualReturnRate    decimal.Decimal `json:"annualReturnRate"` // percent
}

// CashflowDirection distinguishes inflows from outflows
type CashflowDirection string

const (
	Inflow  CashflowDirection = "inflow"
	Outflow CashflowDirection = "outflow"
)

// CashflowEvent is a one-off amount attached to a projection year.
// Amount is always non-negative; Direction carries the sign.
type CashflowEvent struct {
	Year      int               `json:"year"`
	Name      string            `json:"name"`
	Source    string            `json:"source"` // investment, insurance, goal
	Direction CashflowDirection `json:"direction"`
	Amount    decimal.Decimal   `json:"amount"`
}

// Signed returns the amount with outflows negated
func (e CashflowEvent) Signed() decimal.Decimal {
	if e.Direction == Outflow {
		return e.Amount.Neg()
	}
	return e.Amount
}

// InstrumentBalances holds one value per liquid bucket
type InstrumentBalances struct {
	PPF         decimal.Decimal `json:"ppf"`
	EPF         decimal.Decimal `json:"epf"`
	MutualFund  decimal.Decimal `json:"mutualFund"`
	OtherLiquid decimal.Decimal `json:"otherLiquid"`
}

// Get returns the value for a bucket
func (b InstrumentBalances) Get(t InstrumentType) decimal.Decimal {
	switch t {
	case InstrumentPPF:
		return b.PPF
	case InstrumentEPF:
		return b.EPF
	case InstrumentMutualFund:
		return b.MutualFund
	case InstrumentOtherLiquid:
		return b.OtherLiquid
	}
	return decimal.Zero
}

// Set stores the value for a bucket
func (b *InstrumentBalances) Set(t InstrumentType, v decimal.Decimal) {
	switch t {
	case InstrumentPPF:
		b.PPF = v
	case InstrumentEPF:
		b.EPF = v
	case InstrumentMutualFund:
		b.MutualFund = v
	case InstrumentOtherLiquid:
		b.OtherLiquid = v
	}
}

// Total sums all buckets
func (b InstrumentBalances) Total() decimal.Decimal {
	return b.PPF.Add(b.EPF).Add(b.MutualFund).Add(b.OtherLiquid)
}

// StrategyValues holds one amount per income strategy
type StrategyValues struct {
	Sustainable     decimal.Decimal `json:"SUSTAINABLE"`
	Safe4Percent    decimal.Decimal `json:"SAFE_4_PERCENT"`
	SimpleDepletion decimal.Decimal `json:"SIMPLE_DEPLETION"`
}

// Get returns the value for s
func (v StrategyValues) Get(s IncomeStrategy) decimal.Decimal {
	switch s {
	case StrategySafe4Percent:
		return v.Safe4Percent
	case StrategySimpleDepletion:
		return v.SimpleDepletion
	}
	return v.Sustainable
}

// StrategyFlags holds one boolean per income strategy
type StrategyFlags struct {
	Sustainable     bool `json:"SUSTAINABLE"`
	Safe4Percent    bool `json:"SAFE_4_PERCENT"`
	SimpleDepletion bool `json:"SIMPLE_DEPLETION"`
}

// Get returns the flag for s
func (f StrategyFlags) Get(s IncomeStrategy) bool {
	switch s {
	case StrategySafe4Percent:
		return f.Safe4Percent
	case StrategySimpleDepletion:
		return f.SimpleDepletion
	}
	return f.Sustainable
}

// ProjectionRow is the end-of-year state for one accumulation year
type ProjectionRow struct {
	Year         int `json:"year"` // 0-based offset from the as-of year
	CalendarYear int `json:"calendarYear"`
	Age          int `json:"age"`

	Balances      InstrumentBalances `json:"balances"`
	Contributions InstrumentBalances `json:"contributions"` // annual SIP per bucket
	MonthlySIP    decimal.Decimal    `json:"monthlySip"`
	IlliquidValue decimal.Decimal    `json:"illiquidValue"`

	TotalInflow     decimal.Decimal `json:"totalInflow"`
	GoalOutflow     decimal.Decimal `json:"goalOutflow"`
	NetCashflow     decimal.Decimal `json:"netCashflow"`
	PreInflowCorpus decimal.Decimal `json:"preInflowCorpus"`
	NetCorpus       decimal.Decimal `json:"netCorpus"`
	Shortfall       bool            `json:"shortfall"`

	RequiredCorpus StrategyValues `json:"requiredCorpus"`
	CanRetire      StrategyFlags  `json:"canRetire"`
}
