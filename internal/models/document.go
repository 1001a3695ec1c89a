package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentCategory classifies an uploaded document.
type DocumentCategory string

const (
	DocCategoryRentalContract     DocumentCategory = "rental_contract"
	DocCategoryInvoice            DocumentCategory = "invoice"
	DocCategoryTax                DocumentCategory = "tax"
	DocCategoryPropertyManagement DocumentCategory = "property_management"
	DocCategoryLoan               DocumentCategory = "loan"
	DocCategoryOther              DocumentCategory = "other"
)

// DocumentCategories lists every valid document category.
var DocumentCategories = []DocumentCategory{
	DocCategoryRentalContract,
	DocCategoryInvoice,
	DocCategoryTax,
	DocCategoryPropertyManagement,
	DocCategoryLoan,
	DocCategoryOther,
}

func (c DocumentCategory) IsValid() bool {
	for _, v := range DocumentCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Document is the metadata row for an uploaded file. The bytes live on
// the filesystem under a property-scoped directory; Filepath is relative
// to the upload root. A document may evidence a transaction or a credit,
// never both.
type Document struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"property_id"`
	TransactionID *uuid.UUID `gorm:"type:uuid;index" json:"transaction_id,omitempty"`
	CreditID      *uuid.UUID `gorm:"type:uuid;index" json:"credit_id,omitempty"`

	Filename     string           `gorm:"type:varchar(255);not null" json:"filename"`
	Filepath     string           `gorm:"type:varchar(500);not null" json:"filepath"`
	UploadDate   time.Time        `gorm:"not null;autoCreateTime" json:"upload_date"`
	DocumentDate *time.Time       `gorm:"type:date" json:"document_date,omitempty"`
	Category     DocumentCategory `gorm:"type:varchar(32);not null" json:"category"`
	Description  string           `gorm:"type:varchar(500)" json:"description,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
