package projection

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Convention selects how an asset's value grows over elapsed months.
type Convention int

const (
	// LumpSum grows the initial value as a single deposit:
	// initialValue * (1 + rate) ^ (months / 12).
	LumpSum Convention = iota
	// MonthlyContribution treats the initial value as a deposit repeated every
	// month, each month compounding at rate/12:
	// balance = (balance + initialValue) * (1 + rate/12), starting from 0.
	MonthlyContribution
)

func (c Convention) String() string {
	switch c {
	case LumpSum:
		return "lump_sum"
	case MonthlyContribution:
		return "monthly_contribution"
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

// Digits kept after the decimal point in intermediate results.
const internalPrecision = 18

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// ElapsedMonths returns the accrual months of a at asOf. Accrual stops at
// EndDate when it falls on or before asOf, and an asset that has not started
// yet has zero elapsed months.
func ElapsedMonths(a Asset, asOf time.Time) int {
	end := asOf
	if a.EndDate != nil && !a.EndDate.After(asOf) {
		end = *a.EndDate
	}
	months := MonthsBetween(a.StartDate, end)
	if months < 0 {
		return 0
	}
	return months
}

// AccruedValue returns the value of a at asOf under the given convention.
// At zero elapsed months both conventions return the initial value.
func AccruedValue(a Asset, asOf time.Time, c Convention) (decimal.Decimal, error) {
	if err := validateDate("as_of", asOf); err != nil {
		return decimal.Zero, err
	}
	if err := validateAsset(0, a); err != nil {
		return decimal.Zero, err
	}
	return accruedValue(a, asOf, c)
}

// Gain returns the lump-sum growth of a at asOf above its initial value.
func Gain(a Asset, asOf time.Time) (decimal.Decimal, error) {
	v, err := AccruedValue(a, asOf, LumpSum)
	if err != nil {
		return decimal.Zero, err
	}
	return v.Sub(a.InitialValue), nil
}

// accruedValue assumes a and asOf were already validated.
func accruedValue(a Asset, asOf time.Time, c Convention) (decimal.Decimal, error) {
	months := ElapsedMonths(a, asOf)
	switch c {
	case LumpSum:
		return lumpSum(a.InitialValue, a.InterestRate, months)
	case MonthlyContribution:
		return monthlyContribution(a.InitialValue, a.InterestRate, months), nil
	}
	return decimal.Zero, fmt.Errorf("unknown accrual convention %s", c)
}

func lumpSum(principal, rate decimal.Decimal, months int) (decimal.Decimal, error) {
	if months == 0 || principal.IsZero() {
		return principal, nil
	}
	years := decimal.NewFromInt(int64(months)).Div(twelve)
	growth, err := one.Add(rate).PowWithPrecision(years, internalPrecision)
	if err != nil {
		return decimal.Zero, fmt.Errorf("compound growth: %w", err)
	}
	return principal.Mul(growth.Round(internalPrecision)), nil
}

func monthlyContribution(deposit, rate decimal.Decimal, months int) decimal.Decimal {
	if months == 0 {
		return deposit
	}
	factor := one.Add(rate.Div(twelve))
	balance := decimal.Zero
	for i := 0; i < months; i++ {
		balance = balance.Add(deposit).Mul(factor).Round(internalPrecision)
	}
	return balance
}
