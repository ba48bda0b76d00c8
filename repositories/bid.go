package repositories

import (
	"github.com/yourusername/lendmarket/models"
	"gorm.io/gorm"
)

// BidRepository handles database operations for bids
type BidRepository struct {
	db *gorm.DB
}

// NewBidRepository creates a new bid repository instance
func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

// CreateTx inserts a new bid using the caller's transaction
func (r *BidRepository) CreateTx(tx *gorm.DB, bid *models.Bid) error {
	return tx.Create(bid).Error
}

// FindByInvestor retrieves an investor's bids in placement order
func (r *BidRepository) FindByInvestor(investorID string) ([]models.Bid, error) {
	var bids []models.Bid
	result := r.db.Where("investor_id = ?", investorID).Order("bid_date").Find(&bids)
	return bids, result.Error
}

// CountByOperation counts bids placed against an operation
func (r *BidRepository) CountByOperation(operationID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Bid{}).Where("operation_id = ?", operationID).Count(&count).Error
	return count, err
}
