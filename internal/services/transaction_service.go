package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finhack/internal/cache"
	apperrors "finhack/internal/errors"
	"finhack/internal/models"
	"finhack/internal/pagination"
	"finhack/internal/projection"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db           *gorm.DB
	assetService AssetServicer
	cache        cache.Cache
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, assetService AssetServicer, c cache.Cache) TransactionServicer {
	if c == nil {
		c = cache.Noop{}
	}
	return &transactionService{
		db:           db,
		assetService: assetService,
		cache:        c,
	}
}

// CreateTransaction records a transaction, optionally linked to one of the
// user's assets. Saved transactions are immutable apart from their category.
func (s *transactionService) CreateTransaction(
	userID string,
	assetID *string,
	category projection.Category,
	amount decimal.Decimal,
	description string,
	date time.Time,
) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	if date.IsZero() {
		date = time.Now()
	}

	if assetID != nil {
		if _, err := s.assetService.GetAssetByID(userID, *assetID); err != nil {
			return nil, err
		}
	}

	transaction := &models.Transaction{
		UserID:      userID,
		AssetID:     assetID,
		CategoryID:  category,
		Amount:      amount,
		Description: description,
		Date:        date.UTC(),
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	invalidateDashboard(s.cache, userID)
	return transaction, nil
}

// GetUserTransactions retrieves a paginated, filtered list of the user's
// transactions, newest first unless the filter asks for ascending order.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page), pagination.OrderBy("date", filter.SortOrder)).
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FromDate != nil {
		q = q.Where("date >= ?", f.FromDate.UTC())
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", f.ToDate.UTC())
	}
	if f.Category != nil {
		q = q.Where("category_id = ?", *f.Category)
	}
	if f.AssetID != nil {
		q = q.Where("asset_id = ?", *f.AssetID)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransactionCategory re-classifies a transaction.
func (s *transactionService) UpdateTransactionCategory(userID, transactionID string, category projection.Category) (*models.Transaction, error) {
	if !category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.CategoryID == category {
		return transaction, nil
	}

	if err := s.db.Model(transaction).Update("category_id", category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	transaction.CategoryID = category

	invalidateDashboard(s.cache, userID)
	return transaction, nil
}

// DeleteTransaction soft-deletes a transaction.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	invalidateDashboard(s.cache, userID)
	return nil
}

// ListTransactions loads the user's transactions for the projection engine.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, from time.Time, categories ...projection.Category) ([]projection.Transaction, error) {
	q := s.db.WithContext(ctx).Where("user_id = ? AND date >= ?", userID, from.UTC())
	if len(categories) > 0 {
		q = q.Where("category_id IN ?", categories)
	}

	var transactions []models.Transaction
	if err := q.Order("date ASC, id ASC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	out := make([]projection.Transaction, len(transactions))
	for i := range transactions {
		out[i] = transactions[i].ToProjection()
	}
	return out, nil
}
