package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Operation is a funding request opened by an operator. Status is a plain
// boolean: open=true, closed=false. CurrentAmount is a derived aggregate,
// only ever moved by bid placement.
type Operation struct {
	ID             string          `gorm:"primaryKey;size:36" json:"id"`
	OperatorID     string          `gorm:"size:36;not null;index" json:"operator_id"`
	Operator       User            `gorm:"foreignKey:OperatorID" json:"-"`
	RequiredAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"required_amount"`
	AnnualInterest decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"annual_interest"`
	Deadline       time.Time       `gorm:"type:date;not null" json:"deadline"`
	CurrentAmount  decimal.Decimal `gorm:"type:decimal(15,2);default:0" json:"current_amount"`
	Status         bool            `gorm:"default:true" json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TableName overrides the table name
func (Operation) TableName() string {
	return "operations"
}
