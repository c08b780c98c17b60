package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finhack/internal/errors"
	"finhack/internal/models"
	"finhack/internal/pagination"
	"finhack/internal/services"
)

// AssetHandler handles asset-related requests.
type AssetHandler struct {
	assetService services.AssetServicer
	auditService services.AuditServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer, auditService services.AuditServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService, auditService: auditService}
}

// CreateAssetRequest represents the request payload for creating an asset.
// Monetary fields accept JSON numbers or decimal strings.
type CreateAssetRequest struct {
	Name         string          `json:"name" binding:"required,max=255"`
	InitialValue decimal.Decimal `json:"initial_value" binding:"decimal_gte0"`
	InterestRate decimal.Decimal `json:"interest_rate" binding:"interest_rate"`
	StartDate    string          `json:"start_date" binding:"required"`
	EndDate      *string         `json:"end_date"`
}

// UpdateAssetRequest represents the request payload for updating an asset.
// start_date may be sent but must match the stored value.
type UpdateAssetRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=255"`
	InterestRate *decimal.Decimal `json:"interest_rate" binding:"omitempty,interest_rate"`
	StartDate    *string          `json:"start_date"`
	EndDate      *string          `json:"end_date"`
}

// AssetResponse represents an asset in the response
type AssetResponse struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Name         string     `json:"name"`
	InitialValue string     `json:"initial_value"`
	InterestRate string     `json:"interest_rate"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

func parseOptionalDate(v *string, field string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := parseFlexibleTime(*v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+field+": "+err.Error())
	}
	return &t, nil
}

// CreateAsset handles the creation of a new asset
// @Summary     Create an asset
// @Description Record an interest-bearing asset such as a fixed deposit. interest_rate is an annual fraction (0.015 = 1.5%).
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} AssetResponse "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := parseOptionalDate(&req.StartDate, "start_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	endDate, err := parseOptionalDate(req.EndDate, "end_date")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.CreateAsset(userID, req.Name, req.InitialValue, req.InterestRate, *startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditCreateAsset, models.ResourceAsset, asset.ID, c.ClientIP(),
		map[string]any{"name": req.Name, "initial_value": req.InitialValue.String()})

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// GetAssets returns the authenticated user's assets
// @Summary     List assets
// @Description Get a paginated list of the user's assets, newest first
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Asset] "Paginated assets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [get]
func (h *AssetHandler) GetAssets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.assetService.GetUserAssets(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAssetByID handles the retrieval of a specific asset
// @Summary     Get asset by ID
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} AssetResponse "Asset details"
// @Failure     400 {object} ErrorResponse "Invalid asset ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAssetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAssetByID(userID, assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// UpdateAsset handles updating an existing asset
// @Summary     Update asset
// @Description Update name, interest rate or end date. The start date cannot change.
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Asset ID"
// @Param       request body UpdateAssetRequest true "Fields to update"
// @Success     200 {object} AssetResponse "Updated asset"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	update := services.AssetUpdate{Name: req.Name, InterestRate: req.InterestRate}
	if update.StartDate, err = parseOptionalDate(req.StartDate, "start_date"); err != nil {
		respondWithError(c, err)
		return
	}
	if update.EndDate, err = parseOptionalDate(req.EndDate, "end_date"); err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.UpdateAsset(userID, assetID, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditUpdateAsset, models.ResourceAsset, asset.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset handles the deletion of an asset
// @Summary     Delete asset
// @Description Delete an asset. Transactions linked to it are kept and unlinked.
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} map[string]string "Asset deleted"
// @Failure     400 {object} ErrorResponse "Invalid asset ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(userID, assetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, models.AuditDeleteAsset, models.ResourceAsset, assetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}
