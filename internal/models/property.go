package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Property is a rented residential unit. It owns all credits, transactions
// and documents recorded against it.
type Property struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name    string    `gorm:"type:varchar(100);not null" json:"name"`
	Address string    `gorm:"type:varchar(255);not null" json:"address"`

	// Optional purchase data
	PurchaseDate  *time.Time       `gorm:"type:date" json:"purchase_date,omitempty"`
	PurchasePrice *decimal.Decimal `gorm:"type:decimal(12,2)" json:"purchase_price,omitempty"`
	Notes         string           `gorm:"type:varchar(1000)" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	// Loaded on detail reads only
	Credits      []Credit      `gorm:"foreignKey:PropertyID" json:"credits,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:PropertyID" json:"transactions,omitempty"`
	Documents    []Document    `gorm:"foreignKey:PropertyID" json:"documents,omitempty"`
}

func (Property) TableName() string {
	return "properties"
}

// BeforeCreate assigns a fresh UUID when none was provided.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
