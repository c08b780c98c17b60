package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestToProjection_convertsDatesToUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	start := time.Date(2016, time.February, 15, 0, 0, 0, 0, time.UTC).In(est)
	end := time.Date(2018, time.February, 15, 0, 0, 0, 0, time.UTC).In(est)

	asset := &Asset{
		Base:         Base{ID: "a1"},
		InitialValue: decimal.NewFromInt(10000),
		InterestRate: decimal.RequireFromString("0.015"),
		StartDate:    start,
		EndDate:      &end,
	}
	pa := asset.ToProjection()
	if pa.StartDate.Location() != time.UTC || pa.StartDate.Day() != 15 {
		t.Errorf("expected UTC start on the 15th, got %v", pa.StartDate)
	}
	if pa.EndDate == nil || pa.EndDate.Location() != time.UTC || !pa.EndDate.Equal(end) {
		t.Errorf("expected UTC end date equal to %v, got %v", end, pa.EndDate)
	}
	if asset.EndDate.Location() != est {
		t.Error("conversion modified the stored end date")
	}

	tx := &Transaction{Base: Base{ID: "t1"}, CategoryID: "salary", Amount: decimal.NewFromInt(1), Date: start}
	if pt := tx.ToProjection(); pt.Date.Location() != time.UTC || pt.Date.Day() != 15 {
		t.Errorf("expected UTC transaction date on the 15th, got %v", pt.Date)
	}
}
