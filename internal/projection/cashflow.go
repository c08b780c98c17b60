package projection

import (
	"time"

	"github.com/shopspring/decimal"
)

// WindowStart returns the first instant included in a trailing window of the
// given number of months ending at now.
func WindowStart(now time.Time, months int) time.Time {
	return AddMonths(now, -months)
}

// windowSums adds up Salary and Expense amounts dated on or after from.
// Investment transactions never count.
func windowSums(txs []Transaction, from time.Time) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for i := range txs {
		t := &txs[i]
		if t.Date.Before(from) {
			continue
		}
		switch t.Category {
		case CategorySalary:
			income = income.Add(t.Amount)
		case CategoryExpense:
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}

// CurrentCashFlow summarises investment gain across all assets at now and
// income/expense over the trailing one-month window.
func CurrentCashFlow(assets []Asset, transactions []Transaction, now time.Time) (CashFlow, error) {
	if err := validateDate("now", now); err != nil {
		return CashFlow{}, err
	}
	if err := validateAssets(assets); err != nil {
		return CashFlow{}, err
	}
	if err := validateTransactions(transactions); err != nil {
		return CashFlow{}, err
	}

	gain := decimal.Zero
	for i := range assets {
		v, err := accruedValue(assets[i], now, LumpSum)
		if err != nil {
			return CashFlow{}, err
		}
		gain = gain.Add(v.Sub(assets[i].InitialValue))
	}

	income, expense := windowSums(transactions, WindowStart(now, CashFlowWindowMonths))

	return CashFlow{
		InvestmentGain: gain,
		IncomeSum:      income,
		ExpenseSum:     expense,
	}, nil
}
