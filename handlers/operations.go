package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yourusername/lendmarket/middleware"
	"github.com/yourusername/lendmarket/services"
)

type OperationHandler struct {
	ledger *services.LedgerService
}

func NewOperationHandler(ledger *services.LedgerService) *OperationHandler {
	return &OperationHandler{ledger: ledger}
}

// CreateOperationRequest mirrors the original form. CurrentAmount is accepted
// for wire compatibility but ignored: new operations always start at zero.
type CreateOperationRequest struct {
	RequiredAmount decimal.Decimal `json:"required_amount"`
	AnnualInterest decimal.Decimal `json:"annual_interest"`
	Deadline       string          `json:"deadline" binding:"required"`
	CurrentAmount  decimal.Decimal `json:"current_amount"`
}

type UpdateStatusRequest struct {
	OperationID string `json:"operation_id" binding:"required"`
}

// CreateOperation opens a funding request owned by the caller.
func (h *OperationHandler) CreateOperation(c *gin.Context) {
	var req CreateOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deadline, expected YYYY-MM-DD"})
		return
	}

	user := middleware.CurrentUser(c)
	op, err := h.ledger.CreateOperation(user.ID, req.RequiredAmount, req.AnnualInterest, deadline)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Required amount must be greater than zero", "code": "InvalidAmount"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create operation"})
		return
	}

	c.JSON(http.StatusCreated, op)
}

// ListAll returns every operation in creation order.
func (h *OperationHandler) ListAll(c *gin.Context) {
	ops, err := h.ledger.ListOperations(false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch operations"})
		return
	}
	c.JSON(http.StatusOK, ops)
}

// ListOpen returns only open operations, the investor's view.
func (h *OperationHandler) ListOpen(c *gin.Context) {
	ops, err := h.ledger.ListOperations(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch operations"})
		return
	}
	c.JSON(http.StatusOK, ops)
}

// UpdateStatus toggles an operation between open and closed. Only the owning
// operator or an admin may flip it.
func (h *OperationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	op, err := h.ledger.ToggleStatus(req.OperationID, user)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOperationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Operation not found", "code": "NotFound"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions", "code": "Forbidden"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update operation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Operation updated successfully", "operation": op})
}
