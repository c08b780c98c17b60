package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "finhack/internal/errors"
	"finhack/internal/services"
)

// DashboardHandler serves the charted cash-flow and net-worth figures.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// CashFlowResponse is the trailing one-month cash flow.
type CashFlowResponse struct {
	AsOf           string  `json:"as_of"`
	InvestmentGain float64 `json:"investment_gain"`
	IncomeSum      float64 `json:"income_sum"`
	ExpenseSum     float64 `json:"expense_sum"`
}

// NetWorthResponse holds one value per year for each purchase scenario,
// index 0 being the as-of date.
type NetWorthResponse struct {
	AsOf                     string    `json:"as_of"`
	PurchasePrice            *float64  `json:"purchase_price,omitempty"`
	PurchaseDone             []float64 `json:"purchase_done"`
	PurchaseNotDone          []float64 `json:"purchase_not_done"`
	PurchaseNotDoneRecurring []float64 `json:"purchase_not_done_recurring"`
}

// GetCashFlow returns the user's current cash flow
// @Summary     Current cash flow
// @Description Investment gain accrued by assets plus salary and expense totals over the month ending at as_of
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       as_of query string false "Reference date (RFC3339 or YYYY-MM-DD, default today UTC)"
// @Success     200 {object} CashFlowResponse "Cash flow"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Stored records cannot be projected"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/cash-flow [get]
func (h *DashboardHandler) GetCashFlow(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	flow, err := h.dashboardService.GetCashFlow(c.Request.Context(), userID, asOf)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CashFlowResponse{
		AsOf:           asOf.Format(dateLayout),
		InvestmentGain: money(flow.InvestmentGain),
		IncomeSum:      money(flow.IncomeSum),
		ExpenseSum:     money(flow.ExpenseSum),
	})
}

// GetProjectedNetWorth returns the 30-year net-worth projection
// @Summary     Projected net worth
// @Description Yearly net worth over 30 years with and without a hypothetical purchase of purchase_price
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       as_of          query string false "Reference date (RFC3339 or YYYY-MM-DD, default today UTC)"
// @Param       purchase_price query string false "Hypothetical purchase price (non-negative decimal)"
// @Success     200 {object} NetWorthResponse "Net-worth series"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     422 {object} ErrorResponse "Stored records cannot be projected"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/projected-net-worth [get]
func (h *DashboardHandler) GetProjectedNetWorth(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	asOf, err := parseAsOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var price *decimal.Decimal
	if v := c.Query("purchase_price"); v != "" {
		d, parseErr := decimal.NewFromString(v)
		if parseErr != nil || d.IsNegative() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "purchase_price must be a non-negative number"))
			return
		}
		price = &d
	}

	series, err := h.dashboardService.GetProjectedNetWorth(c.Request.Context(), userID, asOf, price)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := NetWorthResponse{
		AsOf:                     asOf.Format(dateLayout),
		PurchaseDone:             moneySeries(series.PurchaseDone),
		PurchaseNotDone:          moneySeries(series.PurchaseNotDone),
		PurchaseNotDoneRecurring: moneySeries(series.PurchaseNotDoneRecurring),
	}
	if price != nil {
		p := money(*price)
		resp.PurchasePrice = &p
	}

	c.JSON(http.StatusOK, resp)
}
