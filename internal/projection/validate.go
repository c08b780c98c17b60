package projection

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is matched by every validation failure returned from this
// package.
var ErrInvalidInput = errors.New("invalid projection input")

// ValidationError identifies the record and field that failed validation.
type ValidationError struct {
	Kind   string // "asset", "transaction" or "input"
	Index  int    // position in the input slice, -1 for scalar inputs
	ID     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("%s: %s %s", e.Kind, e.Field, e.Reason)
	case e.ID != "":
		return fmt.Sprintf("%s %s (index %d): %s %s", e.Kind, e.ID, e.Index, e.Field, e.Reason)
	default:
		return fmt.Sprintf("%s at index %d: %s %s", e.Kind, e.Index, e.Field, e.Reason)
	}
}

// Is makes errors.Is(err, ErrInvalidInput) true for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

var minusOne = decimal.NewFromInt(-1)

func validateDate(field string, t time.Time) error {
	if t.IsZero() {
		return &ValidationError{Kind: "input", Index: -1, Field: field, Reason: "is required"}
	}
	return nil
}

func validateAsset(i int, a Asset) error {
	fail := func(field, reason string) error {
		return &ValidationError{Kind: "asset", Index: i, ID: a.ID, Field: field, Reason: reason}
	}
	if a.StartDate.IsZero() {
		return fail("start_date", "is required")
	}
	if a.EndDate != nil {
		if a.EndDate.IsZero() {
			return fail("end_date", "is malformed")
		}
		if a.EndDate.Before(a.StartDate) {
			return fail("end_date", "is before start_date")
		}
	}
	if a.InitialValue.IsNegative() {
		return fail("initial_value", "must not be negative")
	}
	if a.InterestRate.LessThanOrEqual(minusOne) {
		return fail("interest_rate", "must be greater than -1")
	}
	return nil
}

func validateAssets(assets []Asset) error {
	for i := range assets {
		if err := validateAsset(i, assets[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateTransactions(txs []Transaction) error {
	for i := range txs {
		t := txs[i]
		fail := func(field, reason string) error {
			return &ValidationError{Kind: "transaction", Index: i, ID: t.ID, Field: field, Reason: reason}
		}
		if t.Date.IsZero() {
			return fail("date", "is required")
		}
		if !t.Category.Valid() {
			return fail("category_id", fmt.Sprintf("%q is not a known category", t.Category))
		}
		if t.Amount.IsNegative() {
			return fail("amount", "must not be negative")
		}
	}
	return nil
}
