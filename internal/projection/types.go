// Package projection computes cash-flow summaries and forward net-worth
// series from a user's assets and transactions.
//
// Every function in this package is a pure function of its arguments: no I/O,
// no shared state. Callers may invoke them concurrently without coordination.
package projection

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a transaction for cash-flow purposes.
type Category string

const (
	CategorySalary     Category = "salary"
	CategoryInvestment Category = "investment"
	CategoryExpense    Category = "expense"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySalary, CategoryInvestment, CategoryExpense:
		return true
	}
	return false
}

// Engine parameters.
const (
	// HorizonYears is the number of yearly points in a net-worth series.
	HorizonYears = 30
	// CashFlowWindowMonths is the trailing window used for the current cash flow.
	CashFlowWindowMonths = 1
	// ProjectionWindowMonths is the trailing window used to estimate monthly net income.
	ProjectionWindowMonths = 6
)

// hypotheticalRate is the annual rate applied to a hypothetical purchase
// price kept invested instead of spent.
var hypotheticalRate = decimal.RequireFromString("0.05")

// Asset is a value-accruing holding. EndDate nil means still accruing.
type Asset struct {
	ID           string
	InitialValue decimal.Decimal
	InterestRate decimal.Decimal
	StartDate    time.Time
	EndDate      *time.Time
}

// Transaction is a single dated cash movement. Amount is a positive
// magnitude; direction comes from Category.
type Transaction struct {
	ID       string
	Category Category
	Amount   decimal.Decimal
	Date     time.Time
}

// CashFlow is the trailing-window cash-flow summary.
type CashFlow struct {
	InvestmentGain decimal.Decimal `json:"investmentGain"`
	IncomeSum      decimal.Decimal `json:"incomeSum"`
	ExpenseSum     decimal.Decimal `json:"expenseSum"`
}

// NetWorthSeries holds one value per year offset for each purchase scenario.
type NetWorthSeries struct {
	PurchaseDone             []decimal.Decimal `json:"purchaseDone"`
	PurchaseNotDone          []decimal.Decimal `json:"purchaseNotDone"`
	PurchaseNotDoneRecurring []decimal.Decimal `json:"purchaseNotDoneRecurring"`
}

// Input bundles everything a full computation needs.
type Input struct {
	AsOf                      time.Time
	Assets                    []Asset
	RecentTransactions        []Transaction
	HypotheticalPurchasePrice *decimal.Decimal
}

// Output is the combined result of Compute.
type Output struct {
	CurrentCashFlow CashFlow       `json:"currentCashFlow"`
	NetWorthSeries  NetWorthSeries `json:"netWorthSeries"`
}
