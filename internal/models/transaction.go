package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// TransactionCategory classifies a transaction for reporting.
type TransactionCategory string

const (
	CategoryRent           TransactionCategory = "rent"
	CategoryOperatingCosts TransactionCategory = "operating_costs"
	CategoryRepair         TransactionCategory = "repair"
	CategoryLoanPayment    TransactionCategory = "loan_payment"
	CategoryTax            TransactionCategory = "tax"
	CategoryOther          TransactionCategory = "other"
)

// TransactionCategories lists every valid transaction category.
var TransactionCategories = []TransactionCategory{
	CategoryRent,
	CategoryOperatingCosts,
	CategoryRepair,
	CategoryLoanPayment,
	CategoryTax,
	CategoryOther,
}

func (c TransactionCategory) IsValid() bool {
	for _, v := range TransactionCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Transaction is a single income or expense event on a property,
// optionally linked to a credit as a loan payment.
type Transaction struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID  `gorm:"type:uuid;not null;index" json:"property_id"`
	CreditID   *uuid.UUID `gorm:"type:uuid;index" json:"credit_id,omitempty"`

	Date        time.Time           `gorm:"type:date;not null;index" json:"date"`
	Type        TransactionType     `gorm:"type:varchar(16);not null" json:"type"`
	Category    TransactionCategory `gorm:"type:varchar(32);not null" json:"category"`
	Amount      decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description string              `gorm:"type:varchar(500)" json:"description,omitempty"`
	Recurring   bool                `gorm:"not null;default:false" json:"recurring"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
