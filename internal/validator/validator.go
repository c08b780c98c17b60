// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"

	"finhack/internal/projection"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("transaction_category", validateTransactionCategory)
		_ = v.RegisterValidation("decimal_gte0", validateDecimalGTE0)
		_ = v.RegisterValidation("decimal_gt0", validateDecimalGT0)
		_ = v.RegisterValidation("interest_rate", validateInterestRate)
		_ = v.RegisterValidation("sort_order", validateSortOrder)
	}
}

func validateTransactionCategory(fl validator.FieldLevel) bool {
	return projection.Category(fl.Field().String()).Valid()
}

// decimalValue lets tags see decimal fields as their string form.
func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func fieldDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(f.String())
	return d, err == nil
}

func validateDecimalGTE0(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && !d.IsNegative()
}

func validateDecimalGT0(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && d.IsPositive()
}

var minusOne = decimal.NewFromInt(-1)

func validateInterestRate(fl validator.FieldLevel) bool {
	d, ok := fieldDecimal(fl)
	return ok && d.GreaterThan(minusOne)
}

func validateSortOrder(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "asc", "desc":
		return true
	}
	return false
}
