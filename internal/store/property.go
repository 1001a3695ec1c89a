// Package store implements the four entity stores and the summary
// aggregator. All business rules live here; the HTTP handlers stay thin.
package store

import (
	"errors"
	"time"

	"github.com/HelplessSneeker/noessi-immo/internal/apperr"
	"github.com/HelplessSneeker/noessi-immo/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PropertyStore owns property records.
type PropertyStore struct {
	db *gorm.DB
}

// NewPropertyStore creates a new property store
func NewPropertyStore(db *gorm.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

// PropertyInput carries the fields of a new property.
type PropertyInput struct {
	Name          string
	Address       string
	PurchaseDate  *time.Time
	PurchasePrice *decimal.Decimal
	Notes         string
}

// PropertyPatch carries a partial update; nil fields stay unchanged.
type PropertyPatch struct {
	Name          *string
	Address       *string
	PurchaseDate  *time.Time
	PurchasePrice *decimal.Decimal
	Notes         *string
}

func validateProperty(p *models.Property) error {
	if p.Name == "" {
		return apperr.Validation("name_required", nil)
	}
	if p.Address == "" {
		return apperr.Validation("address_required", nil)
	}
	if p.PurchasePrice != nil && p.PurchasePrice.IsNegative() {
		return apperr.Validation("purchase_price_negative", map[string]any{
			"purchase_price": p.PurchasePrice.String(),
		})
	}
	return nil
}

// Create validates and persists a new property.
func (s *PropertyStore) Create(in PropertyInput) (*models.Property, error) {
	property := &models.Property{
		Name:          in.Name,
		Address:       in.Address,
		PurchaseDate:  in.PurchaseDate,
		PurchasePrice: in.PurchasePrice,
		Notes:         in.Notes,
	}
	if err := validateProperty(property); err != nil {
		return nil, err
	}
	if err := s.db.Create(property).Error; err != nil {
		return nil, apperr.Storage("create property", err)
	}
	return property, nil
}

// List returns all properties without their relations.
func (s *PropertyStore) List() ([]models.Property, error) {
	var properties []models.Property
	if err := s.db.Order("created_at").Find(&properties).Error; err != nil {
		return nil, apperr.Storage("list properties", err)
	}
	return properties, nil
}

// Get returns one property with its credits, transactions and documents
// preloaded. Credit balances are computed on the way out.
func (s *PropertyStore) Get(id uuid.UUID) (*models.Property, error) {
	var property models.Property
	err := s.db.
		Preload("Credits").
		Preload("Transactions").
		Preload("Documents").
		First(&property, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("property", id.String())
	}
	if err != nil {
		return nil, apperr.Storage("get property", err)
	}
	for i := range property.Credits {
		balance, err := creditBalance(s.db, property.Credits[i].ID, property.Credits[i].OriginalAmount)
		if err != nil {
			return nil, err
		}
		property.Credits[i].CurrentBalance = &balance
	}
	return &property, nil
}

// Update applies a partial update and persists the merged record.
func (s *PropertyStore) Update(id uuid.UUID, patch PropertyPatch) (*models.Property, error) {
	var property models.Property
	err := s.db.First(&property, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("property", id.String())
	}
	if err != nil {
		return nil, apperr.Storage("get property", err)
	}

	if patch.Name != nil {
		property.Name = *patch.Name
	}
	if patch.Address != nil {
		property.Address = *patch.Address
	}
	if patch.PurchaseDate != nil {
		property.PurchaseDate = patch.PurchaseDate
	}
	if patch.PurchasePrice != nil {
		property.PurchasePrice = patch.PurchasePrice
	}
	if patch.Notes != nil {
		property.Notes = *patch.Notes
	}

	if err := validateProperty(&property); err != nil {
		return nil, err
	}
	if err := s.db.Save(&property).Error; err != nil {
		return nil, apperr.Storage("update property", err)
	}
	return &property, nil
}

// Delete removes a property. It is rejected while any credit, transaction
// or document still references the property.
func (s *PropertyStore) Delete(id uuid.UUID) error {
	var property models.Property
	err := s.db.First(&property, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("property", id.String())
	}
	if err != nil {
		return apperr.Storage("get property", err)
	}

	var creditCount, transactionCount, documentCount int64
	if err := s.db.Model(&models.Credit{}).Where("property_id = ?", id).Count(&creditCount).Error; err != nil {
		return apperr.Storage("count credits", err)
	}
	if err := s.db.Model(&models.Transaction{}).Where("property_id = ?", id).Count(&transactionCount).Error; err != nil {
		return apperr.Storage("count transactions", err)
	}
	if err := s.db.Model(&models.Document{}).Where("property_id = ?", id).Count(&documentCount).Error; err != nil {
		return apperr.Storage("count documents", err)
	}
	if creditCount+transactionCount+documentCount > 0 {
		return apperr.Conflict("property_has_dependents", map[string]any{
			"credits":      creditCount,
			"transactions": transactionCount,
			"documents":    documentCount,
		})
	}

	if err := s.db.Delete(&property).Error; err != nil {
		return apperr.Storage("delete property", err)
	}
	return nil
}
