package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentType identifies the kind of holding an investment record describes
type InvestmentType string

const (
	InvestmentPPF          InvestmentType = "ppf"
	InvestmentEPF          InvestmentType = "epf"
	InvestmentMutualFund   InvestmentType = "mutual_fund"
	InvestmentEquity       InvestmentType = "equity"
	InvestmentNPS          InvestmentType = "nps"
	InvestmentFixedDeposit InvestmentType = "fixed_deposit"
	InvestmentBond         InvestmentType = "bond"
	InvestmentOther        InvestmentType = "other"
	InvestmentGold         InvestmentType = "gold"
	InvestmentRealEstate   InvestmentType = "real_estate"
)

// InvestmentRecord is a single holding as entered by the user
type InvestmentRecord struct {
	Name                string           `yaml:"name" json:"name" validate:"required"`
	Type                InvestmentType   `yaml:"type" json:"type" validate:"required,oneof=ppf epf mutual_fund equity nps fixed_deposit bond other gold real_estate"`
	CurrentValue        decimal.Decimal  `yaml:"current_value" json:"currentValue" validate:"gte=0"`
	MonthlyContribution decimal.Decimal  `yaml:"monthly_contribution" json:"monthlyContribution" validate:"gte=0"`
	ExpectedReturn      *decimal.Decimal `yaml:"expected_return,omitempty" json:"expectedReturn,omitempty"`
	MaturityDate        *time.Time       `yaml:"maturity_date,omitempty" json:"maturityDate,omitempty"`
	MaturityAmount      decimal.Decimal  `yaml:"maturity_amount,omitempty" json:"maturityAmount,omitempty" validate:"gte=0"`
	ReinvestOnMaturity  bool             `yaml:"reinvest_on_maturity,omitempty" json:"reinvestOnMaturity,omitempty"`
}

// HasMaturity reports whether the record pays out a fixed amount on a known date
func (r InvestmentRecord) HasMaturity() bool {
	return r.MaturityDate != nil && r.MaturityAmount.IsPositive()
}

// LoanRecord describes an outstanding loan repaid through EMIs
type LoanRecord struct {
	Name                 string          `yaml:"name" json:"name" validate:"required"`
	EMI                  decimal.Decimal `yaml:"emi" json:"emi" validate:"gte=0"`
	OutstandingPrincipal decimal.Decimal `yaml:"outstanding_principal" json:"outstandingPrincipal" validate:"gte=0"`
	InterestRate         decimal.Decimal `yaml:"interest_rate" json:"interestRate" validate:"gte=0"`
	EndDate              time.Time       `yaml:"end_date" json:"endDate"`
}

// GoalRecord is a planned disbursement such as education or a wedding
type GoalRecord struct {
	Name       string           `yaml:"name" json:"name" validate:"required"`
	Amount     decimal.Decimal  `yaml:"amount" json:"amount" validate:"gte=0"`
	TargetDate time.Time        `yaml:"target_date" json:"targetDate"`
	GrowthRate *decimal.Decimal `yaml:"growth_rate,omitempty" json:"growthRate,omitempty"`
	Priority   string           `yaml:"priority,omitempty" json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
}

// InsuranceType identifies the kind of policy
type InsuranceType string

const (
	InsuranceTerm      InsuranceType = "term"
	InsuranceEndowment InsuranceType = "endowment"
	InsuranceMoneyBack InsuranceType = "money_back"
	InsuranceULIP      InsuranceType = "ulip"
	InsuranceHealth    InsuranceType = "health"
)

// Payout is a dated amount paid by a policy before maturity
type Payout struct {
	Date   time.Time       `yaml:"date" json:"date"`
	Amount decimal.Decimal `yaml:"amount" json:"amount" validate:"gte=0"`
}

// InsuranceRecord describes a policy with its premiums and payouts
type InsuranceRecord struct {
	Name               string          `yaml:"name" json:"name" validate:"required"`
	Type               InsuranceType   `yaml:"type" json:"type" validate:"required,oneof=term endowment money_back ulip health"`
	AnnualPremium      decimal.Decimal `yaml:"annual_premium" json:"annualPremium" validate:"gte=0"`
	PremiumEndDate     *time.Time      `yaml:"premium_end_date,omitempty" json:"premiumEndDate,omitempty"`
	MaturityDate       *time.Time      `yaml:"maturity_date,omitempty" json:"maturityDate,omitempty"`
	MaturityAmount     decimal.Decimal `yaml:"maturity_amount,omitempty" json:"maturityAmount,omitempty" validate:"gte=0"`
	MoneyBack          []Payout        `yaml:"money_back,omitempty" json:"moneyBack,omitempty" validate:"dive"`
	ReinvestOnMaturity bool            `yaml:"reinvest_on_maturity,omitempty" json:"reinvestOnMaturity,omitempty"`
}

// IncomeType identifies an income stream
type IncomeType string

const (
	IncomeSalary   IncomeType = "salary"
	IncomeRental   IncomeType = "rental"
	IncomeAnnuity  IncomeType = "annuity"
	IncomePension  IncomeType = "pension"
	IncomeBusiness IncomeType = "business"
	IncomeOther    IncomeType = "other"
)

// IncomeRecord is a recurring income stream
type IncomeRecord struct {
	Name                  string          `yaml:"name" json:"name" validate:"required"`
	Type                  IncomeType      `yaml:"type" json:"type" validate:"required,oneof=salary rental annuity pension business other"`
	MonthlyAmount         decimal.Decimal `yaml:"monthly_amount" json:"monthlyAmount" validate:"gte=0"`
	GrowthRate            decimal.Decimal `yaml:"growth_rate" json:"growthRate"`
	ContinuesInRetirement bool            `yaml:"continues_in_retirement" json:"continuesInRetirement"`
}

// ScenarioType identifies a what-if intervention
type ScenarioType string

const (
	ScenarioLumpSum     ScenarioType = "lumpsum"
	ScenarioReinvest    ScenarioType = "reinvest"
	ScenarioSIPIncrease ScenarioType = "sip-increase"
)

// ScenarioSpec is a what-if intervention requested by the user.
// Year is a 0-based offset from the as-of year; nil picks a default.
type ScenarioSpec struct {
	Name    string          `yaml:"name" json:"name"`
	Type    ScenarioType    `yaml:"type" json:"type" validate:"required,oneof=lumpsum reinvest sip-increase"`
	Year    *int            `yaml:"year,omitempty" json:"year,omitempty"`
	Amount  decimal.Decimal `yaml:"amount,omitempty" json:"amount,omitempty" validate:"gte=0"`
	Percent decimal.Decimal `yaml:"percent,omitempty" json:"percent,omitempty" validate:"gte=0"`
}

// Plan is the complete input to the engine
type Plan struct {
	Name       string             `yaml:"name" json:"name"`
	AsOfYear   int                `yaml:"as_of_year" json:"asOfYear"`
	Parameters PlanningParameters `yaml:"parameters" json:"parameters"`

	Investments []InvestmentRecord `yaml:"investments" json:"investments" validate:"dive"`
	Loans       []LoanRecord       `yaml:"loans" json:"loans" validate:"dive"`
	Goals       []GoalRecord       `yaml:"goals" json:"goals" validate:"dive"`
	Insurance   []InsuranceRecord  `yaml:"insurance" json:"insurance" validate:"dive"`
	Income      []IncomeRecord     `yaml:"income" json:"income" validate:"dive"`
	Scenarios   []ScenarioSpec     `yaml:"scenarios,omitempty" json:"scenarios,omitempty" validate:"dive"`
}

// YearIndex converts a date into a 0-based offset from the plan's as-of year
func (p *Plan) YearIndex(t time.Time) int {
	return t.Year() - p.AsOfYear
}

// DeepCopy returns a copy that shares no mutable state with p
func (p *Plan) DeepCopy() *Plan {
	if p == nil {
		return nil
	}
	cp := *p

	if p.Investments != nil {
		cp.Investments = make([]InvestmentRecord, len(p.Investments))
		for i, inv := range p.Investments {
			inv.ExpectedReturn = copyDecimalPtr(inv.ExpectedReturn)
			inv.MaturityDate = copyTimePtr(inv.MaturityDate)
			cp.Investments[i] = inv
		}
	}

	if p.Loans != nil {
		cp.Loans = append([]LoanRecord{}, p.Loans...)
	}

	if p.Goals != nil {
		cp.Goals = make([]GoalRecord, len(p.Goals))
		for i, g := range p.Goals {
			g.GrowthRate = copyDecimalPtr(g.GrowthRate)
			cp.Goals[i] = g
		}
	}

	if p.Insurance != nil {
		cp.Insurance = make([]InsuranceRecord, len(p.Insurance))
		for i, ins := range p.Insurance {
			ins.PremiumEndDate = copyTimePtr(ins.PremiumEndDate)
			ins.MaturityDate = copyTimePtr(ins.MaturityDate)
			if ins.MoneyBack != nil {
				ins.MoneyBack = append([]Payout{}, ins.MoneyBack...)
			}
			cp.Insurance[i] = ins
		}
	}

	if p.Income != nil {
		cp.Income = append([]IncomeRecord{}, p.Income...)
	}

	if p.Scenarios != nil {
		cp.Scenarios = make([]ScenarioSpec, len(p.Scenarios))
		for i, s := range p.Scenarios {
			if s.Year != nil {
				y := *s.Year
				s.Year = &y
			}
			cp.Scenarios[i] = s
		}
	}

	return &cp
}

func copyDecimalPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func copyTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
