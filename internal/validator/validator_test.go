package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type sample struct {
	Category string           `binding:"required,transaction_category"`
	Amount   decimal.Decimal  `binding:"decimal_gt0"`
	Value    decimal.Decimal  `binding:"decimal_gte0"`
	Rate     *decimal.Decimal `binding:"omitempty,interest_rate"`
	Order    string           `binding:"omitempty,sort_order"`
}

func validate(t *testing.T, s sample) error {
	t.Helper()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("gin validator engine is not go-playground/validator")
	}
	return v.Struct(s)
}

func rate(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestRegisteredTags(t *testing.T) {
	Register()

	valid := sample{Category: "salary", Amount: decimal.NewFromInt(10), Value: decimal.Zero, Rate: rate("0.05"), Order: "desc"}
	if err := validate(t, valid); err != nil {
		t.Fatalf("expected valid sample, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*sample)
	}{
		{"unknown category", func(s *sample) { s.Category = "bonus" }},
		{"zero amount", func(s *sample) { s.Amount = decimal.Zero }},
		{"negative value", func(s *sample) { s.Value = decimal.NewFromInt(-1) }},
		{"rate at minus one", func(s *sample) { s.Rate = rate("-1") }},
		{"bad sort order", func(s *sample) { s.Order = "sideways" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			if err := validate(t, s); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOptionalRateMaySkip(t *testing.T) {
	Register()

	s := sample{Category: "expense", Amount: decimal.NewFromInt(1), Value: decimal.NewFromInt(1)}
	if err := validate(t, s); err != nil {
		t.Fatalf("expected nil rate to be accepted, got %v", err)
	}
}
