package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"finhack/internal/models"
	"finhack/internal/pagination"
	"finhack/internal/projection"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID string, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	RotateRefreshTokenHash(userID, presentedHash, newHash string) error
	UpdateProfile(userID string, update ProfileUpdate) (*models.User, error)
	ChangePassword(userID, currentPassword, newPassword string) error
	DeleteUser(userID string) error
}

// ProfileUpdate holds the editable profile fields. Nil fields are left
// unchanged.
type ProfileUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// AssetUpdate holds the mutable fields of an asset. Nil fields are left
// unchanged. StartDate is accepted only if it equals the stored value.
type AssetUpdate struct {
	Name         *string
	InterestRate *decimal.Decimal
	StartDate    *time.Time
	EndDate      *time.Time
}

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	CreateAsset(userID, name string, initialValue, interestRate decimal.Decimal, startDate time.Time, endDate *time.Time) (*models.Asset, error)
	GetUserAssets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error)
	GetAssetByID(userID, assetID string) (*models.Asset, error)
	UpdateAsset(userID, assetID string, update AssetUpdate) (*models.Asset, error)
	DeleteAsset(userID, assetID string) error
	// ListAssets returns every asset of the user in engine form.
	ListAssets(ctx context.Context, userID string) ([]projection.Asset, error)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate  *time.Time
	ToDate    *time.Time
	Category  *projection.Category
	AssetID   *string
	SortOrder string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, assetID *string, category projection.Category, amount decimal.Decimal, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransactionCategory(userID, transactionID string, category projection.Category) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
	// ListTransactions returns the user's transactions dated on or after from,
	// restricted to the given categories when any are passed.
	ListTransactions(ctx context.Context, userID string, from time.Time, categories ...projection.Category) ([]projection.Transaction, error)
}

// DashboardServicer computes the charted figures for a user.
type DashboardServicer interface {
	GetCashFlow(ctx context.Context, userID string, asOf time.Time) (*projection.CashFlow, error)
	GetProjectedNetWorth(ctx context.Context, userID string, asOf time.Time, purchasePrice *decimal.Decimal) (*projection.NetWorthSeries, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
