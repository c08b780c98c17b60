package projection

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProjectNetWorth projects net worth for HorizonYears yearly points starting
// at now (offset 0) under three scenarios:
//
//   - PurchaseDone: the hypothetical purchase is made, only existing assets
//     and net income count.
//   - PurchaseNotDone: the purchase price stays invested as a lump sum at 5%.
//   - PurchaseNotDoneRecurring: the purchase price is invested every month at
//     5%/12; contributes nothing when no price is given.
//
// Net income is estimated from the trailing six months of Salary and Expense
// transactions and accumulated linearly per year.
func ProjectNetWorth(assets []Asset, transactions []Transaction, now time.Time, purchasePrice *decimal.Decimal) (NetWorthSeries, error) {
	if err := validateDate("now", now); err != nil {
		return NetWorthSeries{}, err
	}
	if purchasePrice != nil && purchasePrice.IsNegative() {
		return NetWorthSeries{}, &ValidationError{Kind: "input", Index: -1, Field: "purchase_price", Reason: "must not be negative"}
	}
	if err := validateAssets(assets); err != nil {
		return NetWorthSeries{}, err
	}
	if err := validateTransactions(transactions); err != nil {
		return NetWorthSeries{}, err
	}

	price := decimal.Zero
	if purchasePrice != nil {
		price = *purchasePrice
	}
	hypothetical := Asset{
		ID:           "hypothetical",
		InitialValue: price,
		InterestRate: hypotheticalRate,
		StartDate:    now,
	}

	income, expense := windowSums(transactions, WindowStart(now, ProjectionWindowMonths))
	windowNet := income.Sub(expense)
	windowLen := decimal.NewFromInt(ProjectionWindowMonths)

	series := NetWorthSeries{
		PurchaseDone:             make([]decimal.Decimal, HorizonYears),
		PurchaseNotDone:          make([]decimal.Decimal, HorizonYears),
		PurchaseNotDoneRecurring: make([]decimal.Decimal, HorizonYears),
	}

	for j := 0; j < HorizonYears; j++ {
		at := YearOffset(now, j)

		investSum := decimal.Zero
		for i := range assets {
			v, err := accruedValue(assets[i], at, LumpSum)
			if err != nil {
				return NetWorthSeries{}, fmt.Errorf("asset %d at year %d: %w", i, j, err)
			}
			investSum = investSum.Add(v)
		}

		priceInvest, err := accruedValue(hypothetical, at, LumpSum)
		if err != nil {
			return NetWorthSeries{}, fmt.Errorf("hypothetical purchase at year %d: %w", j, err)
		}
		priceRecur := decimal.Zero
		if purchasePrice != nil {
			priceRecur, err = accruedValue(hypothetical, at, MonthlyContribution)
			if err != nil {
				return NetWorthSeries{}, fmt.Errorf("hypothetical purchase at year %d: %w", j, err)
			}
		}

		// (j+1) * 12 * (income/6 - expense/6), kept exact by dividing last.
		contribution := windowNet.Mul(decimal.NewFromInt(int64((j + 1) * 12))).Div(windowLen)

		base := investSum.Add(contribution)
		series.PurchaseDone[j] = base
		series.PurchaseNotDone[j] = base.Add(priceInvest)
		series.PurchaseNotDoneRecurring[j] = base.Add(priceRecur)
	}

	return series, nil
}

// Compute runs both computations over a single input.
func Compute(in Input) (Output, error) {
	cf, err := CurrentCashFlow(in.Assets, in.RecentTransactions, in.AsOf)
	if err != nil {
		return Output{}, err
	}
	nw, err := ProjectNetWorth(in.Assets, in.RecentTransactions, in.AsOf, in.HypotheticalPurchasePrice)
	if err != nil {
		return Output{}, err
	}
	return Output{CurrentCashFlow: cf, NetWorthSeries: nw}, nil
}
