package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finhack/internal/projection"
)

// CategoryResponse describes one transaction category.
type CategoryResponse struct {
	ID          projection.Category `json:"id"`
	Name        string              `json:"name"`
	Direction   string              `json:"direction"`
	Description string              `json:"description"`
}

var categories = []CategoryResponse{
	{ID: projection.CategorySalary, Name: "Salary", Direction: "in", Description: "Earned income"},
	{ID: projection.CategoryInvestment, Name: "Investment", Direction: "out", Description: "Money moved into an asset"},
	{ID: projection.CategoryExpense, Name: "Expense", Direction: "out", Description: "Spending"},
}

// CategoryHandler serves the fixed set of transaction categories.
type CategoryHandler struct{}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// ListCategories returns every transaction category
// @Summary     List categories
// @Description Get the transaction categories accepted by the API
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  CategoryResponse "Categories"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
