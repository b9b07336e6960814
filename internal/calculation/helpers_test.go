package calculation

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/corpus/internal/domain"
	"github.com/shopspring/decimal"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func dp(v string) *decimal.Decimal {
	x := d(v)
	return &x
}

func date(year int) time.Time {
	return time.Date(year, time.June, 30, 0, 0, 0, 0, time.UTC)
}

func datep(year int) *time.Time {
	t := date(year)
	return &t
}

// goldenPlan is the reference accumulation case: age 35 to 60, a 2,000,000
// mutual fund balance with a 50,000 SIP stepped up 10% a year from year 1.
func goldenPlan() *domain.Plan {
	return &domain.Plan{
		Name:     "golden",
		AsOfYear: 2025,
		Parameters: domain.PlanningParameters{
			CurrentAge:              35,
			RetirementAge:           60,
			LifeExpectancy:          85,
			InflationRate:           d("6"),
			PPFReturn:               d("7.1"),
			EPFReturn:               d("8.25"),
			MFReturn:                d("12"),
			OtherReturn:             d("7"),
			IlliquidReturn:          d("5"),
			CorpusReturn:            d("10"),
			WithdrawalRate:          d("8"),
			SIPStepUpPercent:        d("10"),
			StepUpEffectiveFromYear: 1,
			IncomeStrategy:          domain.StrategySustainable,
			MonthlyExpenses:         d("100000"),
		},
		Investments: []domain.InvestmentRecord{
			{
				Name:                "Equity funds",
				Type:                domain.InvestmentMutualFund,
				CurrentValue:        d("2000000"),
				MonthlyContribution: d("50000"),
			},
		},
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Debugf(format string, args ...any) { l.add("DEBUG", format, args...) }
func (l *recordingLogger) Infof(format string, args ...any)  { l.add("INFO", format, args...) }
func (l *recordingLogger) Warnf(format string, args ...any)  { l.add("WARN", format, args...) }
func (l *recordingLogger) Errorf(format string, args ...any) { l.add("ERROR", format, args...) }

func (l *recordingLogger) add(level, format string, args ...any) {
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}
