package output

import (
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	lakh  = decimal.NewFromInt(100000)
	crore = decimal.NewFromInt(10000000)
)

// inr returns the INR currency definition from go-money
func inr() money.Currency {
	// the constructor never returns a nil currency
	return *money.New(0, money.INR).Currency()
}

// FormatINR formats an amount with the rupee grapheme, thousands separators
// and paise, e.g. ₹2,840,000.00
func FormatINR(d decimal.Decimal) string {
	cur := inr()
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// FormatRupees formats a whole-rupee amount with Indian digit grouping,
// e.g. ₹20,29,74,194
func FormatRupees(d decimal.Decimal) string {
	cur := inr()
	n := d.Round(0).IntPart()
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + cur.Grapheme + indianGrouping(strconv.FormatInt(n, 10))
}

// FormatCompactINR abbreviates large amounts in crores and lakhs,
// e.g. ₹20.30 Cr, ₹28.40 L
func FormatCompactINR(d decimal.Decimal) string {
	abs := d.Abs()
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	grapheme := inr().Grapheme
	switch {
	case abs.GreaterThanOrEqual(crore):
		return sign + grapheme + abs.Div(crore).StringFixed(2) + " Cr"
	case abs.GreaterThanOrEqual(lakh):
		return sign + grapheme + abs.Div(lakh).StringFixed(2) + " L"
	}
	return FormatRupees(d)
}

// indianGrouping groups the last three digits, then pairs
func indianGrouping(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
