package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yourusername/lendmarket/models"
	"github.com/yourusername/lendmarket/repositories"
	"gorm.io/gorm"
)

// LedgerService owns operation and bid state and the invariants between them:
// current_amount is the sum of invested_amount over an operation's bids, and
// only bid placement moves it.
type LedgerService struct {
	operations *repositories.OperationRepository
	bids       *repositories.BidRepository
}

// NewLedgerService creates a new ledger service instance
func NewLedgerService(operations *repositories.OperationRepository, bids *repositories.BidRepository) *LedgerService {
	return &LedgerService{operations: operations, bids: bids}
}

// CreateOperation opens a funding request for the operator. The caller has
// already role-gated operatorID; current_amount always starts at zero
// regardless of what the request carried.
func (s *LedgerService) CreateOperation(operatorID string, requiredAmount, annualInterest decimal.Decimal, deadline time.Time) (*models.Operation, error) {
	if requiredAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if annualInterest.IsNegative() {
		return nil, ErrInvalidAmount
	}

	op := models.Operation{
		ID:             uuid.NewString(),
		OperatorID:     operatorID,
		RequiredAmount: requiredAmount,
		AnnualInterest: annualInterest,
		Deadline:       deadline,
		CurrentAmount:  decimal.Zero,
		Status:         true,
		CreatedAt:      time.Now(),
	}

	if err := s.operations.Create(&op); err != nil {
		return nil, err
	}

	return &op, nil
}

// ListOperations returns operations in creation order, optionally only the
// open ones.
func (s *LedgerService) ListOperations(openOnly bool) ([]models.Operation, error) {
	if openOnly {
		return s.operations.FindOpen()
	}
	return s.operations.FindAll()
}

// ToggleStatus flips an operation between open and closed. Only the owning
// operator or an admin may do it; current_amount is untouched.
func (s *LedgerService) ToggleStatus(operationID string, actor *models.User) (*models.Operation, error) {
	op, err := s.operations.FindByID(operationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, err
	}

	if actor.Role != models.RoleAdmin && op.OperatorID != actor.ID {
		return nil, ErrForbidden
	}

	op.Status = !op.Status
	if err := s.operations.SetStatus(op.ID, op.Status); err != nil {
		return nil, err
	}

	return &op, nil
}

// PlaceBid records an investor's commitment against an open operation. The
// bid insert and the current_amount increment run in one transaction, and the
// increment is a status-guarded SQL-level add, so two concurrent bids can
// never lose an update and a bid can never land on an operation that closed
// under it. The interest rate is snapshotted from the operation here, not
// taken from the caller.
func (s *LedgerService) PlaceBid(investorID, operationID string, amount decimal.Decimal) (*models.Bid, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var bid models.Bid
	err := s.operations.DB().Transaction(func(tx *gorm.DB) error {
		var op models.Operation
		if err := tx.First(&op, "id = ?", operationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOperationNotFound
			}
			return err
		}
		if !op.Status {
			return ErrOperationClosed
		}

		affected, err := s.operations.AddToCurrentAmount(tx, op.ID, amount)
		if err != nil {
			return err
		}
		if affected == 0 {
			// closed between the read above and the guarded update
			return ErrOperationClosed
		}

		bid = models.Bid{
			ID:             uuid.NewString(),
			InvestorID:     investorID,
			OperationID:    op.ID,
			InvestedAmount: amount,
			InterestRate:   op.AnnualInterest,
			BidDate:        time.Now(),
		}
		return s.bids.CreateTx(tx, &bid)
	})
	if err != nil {
		return nil, err
	}

	return &bid, nil
}

// ListBidsByInvestor returns an investor's bids in placement order.
func (s *LedgerService) ListBidsByInvestor(investorID string) ([]models.Bid, error) {
	return s.bids.FindByInvestor(investorID)
}

// GetOperation retrieves a single operation.
func (s *LedgerService) GetOperation(id string) (*models.Operation, error) {
	op, err := s.operations.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, err
	}
	return &op, nil
}
