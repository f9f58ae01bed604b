package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/expense-tracker/internal/middleware"
	"github.com/h4ks-com/expense-tracker/internal/models"
	"github.com/h4ks-com/expense-tracker/internal/services"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type ExpenseRequest struct {
	Amount          models.Amount `json:"amount" swaggertype:"number" example:"12.50"`
	TransactionDate models.Date   `json:"transaction_date" swaggertype:"string" example:"2024-05-01"`
	Category        string        `json:"category" example:"food"`
	Description     string        `json:"description" example:"lunch"`
}

func (r ExpenseRequest) input() services.ExpenseInput {
	return services.ExpenseInput{
		Amount:          r.Amount,
		TransactionDate: r.TransactionDate,
		Category:        r.Category,
		Description:     r.Description,
	}
}

type CreateExpenseResponse struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

// CreateExpense godoc
// @Summary Add an expense
// @Description Record an expense owned by the authenticated user
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExpenseRequest true "Expense"
// @Success 201 {object} CreateExpenseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	expense, err := h.expenseService.AddExpense(c.Request.Context(), middleware.GetUserID(c), req.input())
	if err != nil {
		respondError(c, err, "Error inserting expense")
		return
	}

	c.JSON(http.StatusCreated, CreateExpenseResponse{
		Message: "Expense added successfully",
		ID:      expense.ID,
	})
}

// ListExpenses godoc
// @Summary List expenses
// @Description List every expense owned by the authenticated user
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Expense
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.expenseService.ListExpenses(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "Error fetching expenses")
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// UpdateExpense godoc
// @Summary Update an expense
// @Description Overwrite an expense owned by the authenticated user
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Param request body ExpenseRequest true "Expense"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	expenseID, ok := expenseIDParam(c)
	if !ok {
		expenseNotFound(c)
		return
	}

	_, err := h.expenseService.UpdateExpense(c.Request.Context(), middleware.GetUserID(c), expenseID, req.input())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			expenseNotFound(c)
			return
		}
		respondError(c, err, "Error updating expense")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Expense updated successfully"})
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Description Delete an expense owned by the authenticated user
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Expense ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	expenseID, ok := expenseIDParam(c)
	if !ok {
		expenseNotFound(c)
		return
	}

	_, err := h.expenseService.DeleteExpense(c.Request.Context(), middleware.GetUserID(c), expenseID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			expenseNotFound(c)
			return
		}
		respondError(c, err, "Error deleting expense")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Expense deleted successfully"})
}

// GetHistory godoc
// @Summary Transaction history
// @Description The authenticated user's expenses, newest transaction date first
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.HistoryEntry
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/history [get]
func (h *ExpenseHandler) GetHistory(c *gin.Context) {
	entries, err := h.expenseService.ListHistory(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Message: "No transactions found"})
			return
		}
		respondError(c, err, "Error fetching transaction history")
		return
	}

	c.JSON(http.StatusOK, entries)
}

// expenseIDParam parses the :id segment. Ids that cannot name a row are
// reported like any other miss.
func expenseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func expenseNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: "Expense not found"})
}
