package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finhack/internal/cache"
	apperrors "finhack/internal/errors"
	"finhack/internal/logger"
	"finhack/internal/models"
	"finhack/internal/pagination"
	"finhack/internal/projection"
)

// assetService handles asset-related business logic.
type assetService struct {
	db    *gorm.DB
	cache cache.Cache
}

// NewAssetService creates a new AssetServicer. Writes drop the owner's
// cached dashboard results from c; a nil cache disables that.
func NewAssetService(db *gorm.DB, c cache.Cache) AssetServicer {
	if c == nil {
		c = cache.Noop{}
	}
	return &assetService{db: db, cache: c}
}

// CreateAsset records a new interest-bearing asset for the user.
func (s *assetService) CreateAsset(userID, name string, initialValue, interestRate decimal.Decimal, startDate time.Time, endDate *time.Time) (*models.Asset, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if startDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start date is required")
	}
	startDate = startDate.UTC()
	if endDate != nil {
		end := endDate.UTC()
		endDate = &end
	}

	asset := &models.Asset{
		UserID:       userID,
		Name:         name,
		InitialValue: initialValue,
		InterestRate: interestRate,
		StartDate:    startDate,
		EndDate:      endDate,
	}
	if err := checkAsset(asset); err != nil {
		return nil, err
	}

	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(userID)
	return asset, nil
}

// checkAsset applies the engine's record rules so nothing stored can later
// fail a projection.
func checkAsset(a *models.Asset) error {
	if _, err := projection.AccruedValue(a.ToProjection(), a.StartDate, projection.LumpSum); err != nil {
		var verr *projection.ValidationError
		if errors.As(err, &verr) {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, verr.Field+" "+verr.Reason)
		}
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}
	return nil
}

// GetUserAssets retrieves a paginated list of the user's assets, oldest first.
func (s *assetService) GetUserAssets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error) {
	page.Defaults()

	base := s.db.Model(&models.Asset{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := base.Scopes(pagination.Paginate(page), pagination.OrderBy("start_date", pagination.SortAsc)).
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetAssetByID retrieves an asset by ID for a specific user
func (s *assetService) GetAssetByID(userID, assetID string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Where("id = ? AND user_id = ?", assetID, userID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// UpdateAsset changes the name, rate or end date of an asset.
func (s *assetService) UpdateAsset(userID, assetID string, update AssetUpdate) (*models.Asset, error) {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return nil, err
	}

	if update.StartDate != nil && !update.StartDate.Equal(asset.StartDate) {
		return nil, apperrors.ErrStartDateImmutable
	}
	if update.Name != nil {
		if *update.Name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name cannot be empty")
		}
		asset.Name = *update.Name
	}
	if update.InterestRate != nil {
		asset.InterestRate = *update.InterestRate
	}
	if update.EndDate != nil {
		end := update.EndDate.UTC()
		asset.EndDate = &end
	}
	if err := checkAsset(asset); err != nil {
		return nil, err
	}

	if err := s.db.Model(asset).Select("name", "interest_rate", "end_date").Updates(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	s.invalidate(userID)
	return asset, nil
}

// DeleteAsset soft-deletes an asset and unlinks its transactions.
func (s *assetService) DeleteAsset(userID, assetID string) error {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).
			Where("asset_id = ? AND user_id = ?", asset.ID, userID).
			Update("asset_id", nil).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(asset).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(userID)
	return nil
}

// ListAssets loads every asset of the user for the projection engine.
func (s *assetService) ListAssets(ctx context.Context, userID string) ([]projection.Asset, error) {
	var assets []models.Asset
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	out := make([]projection.Asset, len(assets))
	for i := range assets {
		out[i] = assets[i].ToProjection()
	}
	return out, nil
}

func (s *assetService) invalidate(userID string) {
	invalidateDashboard(s.cache, userID)
}

// invalidateDashboard drops cached dashboard results after a write. Cache
// failures are logged; the write itself already succeeded.
func invalidateDashboard(c cache.Cache, userID string) {
	if err := c.Invalidate(context.Background(), userID); err != nil {
		logger.Get().Warnw("failed to invalidate dashboard cache", "user_id", userID, "error", err)
	}
}
