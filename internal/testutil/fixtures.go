package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finhack/internal/models"
	"finhack/internal/projection"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestAsset creates a 10000 fixed deposit at 1.5% starting on start.
func CreateTestAsset(t *testing.T, db *gorm.DB, userID string, start time.Time) *models.Asset {
	t.Helper()
	return CreateTestAssetWithValues(t, db, userID, "10000", "0.015", start)
}

// CreateTestAssetWithValues creates an open-ended asset with the given principal and rate.
func CreateTestAssetWithValues(t *testing.T, db *gorm.DB, userID, value, rate string, start time.Time) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Deposit %d", nextID()),
		InitialValue: decimal.RequireFromString(value),
		InterestRate: decimal.RequireFromString(rate),
		StartDate:    start,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestTransaction creates a transaction of the given category and amount.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, category projection.Category, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		CategoryID:  category,
		Amount:      decimal.RequireFromString(amount),
		Description: fmt.Sprintf("Test %s %d", category, nextID()),
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
