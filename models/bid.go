package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is an investor's commitment against an open operation. InterestRate is
// snapshotted from the operation at placement time and never re-read; a bid
// is immutable once written.
type Bid struct {
	ID             string          `gorm:"primaryKey;size:36" json:"id"`
	InvestorID     string          `gorm:"size:36;not null;index" json:"investor_id"`
	Investor       User            `gorm:"foreignKey:InvestorID" json:"-"`
	OperationID    string          `gorm:"size:36;not null;index" json:"operation_id"`
	Operation      Operation       `gorm:"foreignKey:OperationID" json:"-"`
	InvestedAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"invested_amount"`
	InterestRate   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	BidDate        time.Time       `json:"bid_date"`
}

// TableName overrides the table name
func (Bid) TableName() string {
	return "bids"
}
