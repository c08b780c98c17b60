package models

import (
	"time"

	"finhack/internal/projection"

	"github.com/shopspring/decimal"
)

// Transaction represents a dated cash movement. Amount is always a positive
// magnitude; CategoryID decides its direction.
type Transaction struct {
	Base
	UserID      string              `gorm:"type:uuid;not null;index" json:"user_id"`
	AssetID     *string             `gorm:"type:uuid;index" json:"asset_id,omitempty"`
	CategoryID  projection.Category `gorm:"type:varchar(16);not null;index" json:"category_id"`
	Amount      decimal.Decimal     `gorm:"type:numeric(20,8);not null" json:"amount"`
	Description string              `json:"description"`
	Date        time.Time           `gorm:"not null;index" json:"date"`

	Asset *Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

// ToProjection converts the stored transaction into the engine's value type.
func (t *Transaction) ToProjection() projection.Transaction {
	return projection.Transaction{
		ID:       t.ID,
		Category: t.CategoryID,
		Amount:   t.Amount,
		Date:     t.Date.UTC(),
	}
}
