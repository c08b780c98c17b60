package models

import (
	"time"

	"finhack/internal/projection"

	"github.com/shopspring/decimal"
)

// Asset is an interest-bearing holding such as a fixed deposit. InitialValue
// is the principal; InterestRate is the annual rate as a fraction.
type Asset struct {
	Base
	UserID       string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name         string          `gorm:"not null" json:"name"`
	InitialValue decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"initial_value"`
	InterestRate decimal.Decimal `gorm:"type:numeric(12,8);not null" json:"interest_rate"`
	StartDate    time.Time       `gorm:"not null" json:"start_date"`
	EndDate      *time.Time      `json:"end_date,omitempty"`
}

// ToProjection converts the stored asset into the engine's value type.
// Dates are handed over in UTC whatever zone the driver returned them in.
func (a *Asset) ToProjection() projection.Asset {
	var end *time.Time
	if a.EndDate != nil {
		e := a.EndDate.UTC()
		end = &e
	}
	return projection.Asset{
		ID:           a.ID,
		InitialValue: a.InitialValue,
		InterestRate: a.InterestRate,
		StartDate:    a.StartDate.UTC(),
		EndDate:      end,
	}
}
