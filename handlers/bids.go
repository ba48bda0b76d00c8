package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yourusername/lendmarket/middleware"
	"github.com/yourusername/lendmarket/services"
)

type BidHandler struct {
	ledger *services.LedgerService
}

func NewBidHandler(ledger *services.LedgerService) *BidHandler {
	return &BidHandler{ledger: ledger}
}

// MakeOfferRequest mirrors the original offer form. InterestRate is accepted
// but ignored: the ledger snapshots the operation's own rate, a client cannot
// commit at a rate of its choosing.
type MakeOfferRequest struct {
	OperationID    string          `json:"operation_id" binding:"required"`
	InvestedAmount decimal.Decimal `json:"invested_amount"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
}

// MakeOffer places the caller's bid against an open operation.
func (h *BidHandler) MakeOffer(c *gin.Context) {
	var req MakeOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	bid, err := h.ledger.PlaceBid(user.ID, req.OperationID, req.InvestedAmount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOperationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Operation not found", "code": "OperationNotFound"})
		case errors.Is(err, services.ErrOperationClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "Operation is closed", "code": "OperationClosed"})
		case errors.Is(err, services.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invested amount must be greater than zero", "code": "InvalidAmount"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place bid"})
		}
		return
	}

	c.JSON(http.StatusCreated, bid)
}

// MyBids lists the caller's bids in placement order.
func (h *BidHandler) MyBids(c *gin.Context) {
	user := middleware.CurrentUser(c)
	bids, err := h.ledger.ListBidsByInvestor(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bids"})
		return
	}
	c.JSON(http.StatusOK, bids)
}
