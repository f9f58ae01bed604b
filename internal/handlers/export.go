package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/expense-tracker/internal/middleware"
	"github.com/h4ks-com/expense-tracker/internal/services"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

type VerifyExportResponse struct {
	Valid bool `json:"valid"`
}

// ExportExpenses godoc
// @Summary Export expenses
// @Description Export every expense of the authenticated user with an HMAC signature
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.ExpenseExport
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/export [get]
func (h *ExportHandler) ExportExpenses(c *gin.Context) {
	export, err := h.exportService.ExportExpenses(c.Request.Context(), middleware.GetUserID(c), middleware.GetUsername(c))
	if err != nil {
		respondError(c, err, "Error exporting expenses")
		return
	}

	c.JSON(http.StatusOK, export)
}

// VerifyExport godoc
// @Summary Verify an expense export
// @Description Check the signature of a previously exported document
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body services.ExpenseExport true "Export document with signature"
// @Success 200 {object} VerifyExportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions/verify [post]
func (h *ExportHandler) VerifyExport(c *gin.Context) {
	var export services.ExpenseExport
	if err := c.ShouldBindJSON(&export); err != nil {
		badRequest(c, err)
		return
	}

	valid, err := h.exportService.VerifyExport(&export)
	if err != nil {
		if errors.Is(err, services.ErrInvalidExport) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid export data"})
			return
		}
		respondError(c, err, "Error verifying export")
		return
	}

	c.JSON(http.StatusOK, VerifyExportResponse{Valid: valid})
}
