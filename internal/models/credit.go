package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Credit is a loan secured against a property. The reducing balance is
// never stored; it is derived from the linked payment transactions on
// every read.
type Credit struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index" json:"property_id"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`

	OriginalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"original_amount"`
	InterestRate   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	MonthlyPayment decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"monthly_payment"`
	StartDate      time.Time       `gorm:"type:date;not null" json:"start_date"`
	EndDate        *time.Time      `gorm:"type:date" json:"end_date,omitempty"`

	// Derived, populated by the ledger on reads; never persisted.
	CurrentBalance *decimal.Decimal `gorm:"-" json:"current_balance,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Credit) TableName() string {
	return "credits"
}

func (c *Credit) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
