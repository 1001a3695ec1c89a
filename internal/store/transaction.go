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

// maxFutureDays bounds how far ahead a transaction may be dated.
const maxFutureDays = 366

// TransactionJournal owns income and expense entries.
type TransactionJournal struct {
	db *gorm.DB
}

// NewTransactionJournal creates a new transaction journal
func NewTransactionJournal(db *gorm.DB) *TransactionJournal {
	return &TransactionJournal{db: db}
}

// TransactionInput carries the fields of a new transaction.
type TransactionInput struct {
	PropertyID  uuid.UUID
	CreditID    *uuid.UUID
	Date        time.Time
	Type        models.TransactionType
	Category    models.TransactionCategory
	Amount      decimal.Decimal
	Description string
	Recurring   bool
}

// TransactionPatch carries a partial update; nil fields stay unchanged.
type TransactionPatch struct {
	CreditID    *uuid.UUID
	Date        *time.Time
	Type        *models.TransactionType
	Category    *models.TransactionCategory
	Amount      *decimal.Decimal
	Description *string
	Recurring   *bool
}

// TransactionFilter narrows List results. Zero values mean "no filter".
type TransactionFilter struct {
	PropertyID *uuid.UUID
	CreditID   *uuid.UUID
	Type       models.TransactionType
	Category   models.TransactionCategory
	DateFrom   *time.Time
	DateTo     *time.Time
	Offset     int
	Limit      int
}

// validateTransaction checks field constraints and the loan-payment
// linkage rules on a fully merged record.
func (s *TransactionJournal) validateTransaction(t *models.Transaction) error {
	if !t.Type.IsValid() {
		return apperr.Validation("invalid_type", map[string]any{"type": string(t.Type)})
	}
	if !t.Category.IsValid() {
		return apperr.Validation("invalid_category", map[string]any{"category": string(t.Category)})
	}
	if !t.Amount.IsPositive() {
		return apperr.Validation("amount_not_positive", map[string]any{"amount": t.Amount.String()})
	}
	if t.Date.After(time.Now().AddDate(0, 0, maxFutureDays)) {
		return apperr.Validation("date_too_far_in_future", map[string]any{
			"date":            t.Date.Format("2006-01-02"),
			"max_future_days": maxFutureDays,
		})
	}

	// loan-payment linkage: a credit link and the loan_payment category
	// imply each other, and a loan payment is always an expense
	if t.Category == models.CategoryLoanPayment {
		if t.CreditID == nil {
			return apperr.Validation("loan_payment_requires_credit", nil)
		}
		if t.Type != models.TransactionTypeExpense {
			return apperr.Validation("loan_payment_must_be_expense", nil)
		}
	} else if t.CreditID != nil {
		return apperr.Validation("credit_link_requires_loan_payment", map[string]any{
			"category": string(t.Category),
		})
	}

	if t.CreditID != nil {
		var credit models.Credit
		err := s.db.First(&credit, "id = ?", *t.CreditID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("credit", t.CreditID.String())
		}
		if err != nil {
			return apperr.Storage("get credit", err)
		}
		if credit.PropertyID != t.PropertyID {
			return apperr.Validation("credit_wrong_property", map[string]any{
				"credit_id":   t.CreditID.String(),
				"property_id": t.PropertyID.String(),
			})
		}
	}
	return nil
}

// Create validates and persists a new transaction. The owning property
// must exist; a linked credit must belong to the same property.
func (s *TransactionJournal) Create(in TransactionInput) (*models.Transaction, error) {
	if err := s.db.First(&models.Property{}, "id = ?", in.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("property", in.PropertyID.String())
		}
		return nil, apperr.Storage("get property", err)
	}

	transaction := &models.Transaction{
		PropertyID:  in.PropertyID,
		CreditID:    in.CreditID,
		Date:        in.Date,
		Type:        in.Type,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
		Recurring:   in.Recurring,
	}
	if err := s.validateTransaction(transaction); err != nil {
		return nil, err
	}
	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperr.Storage("create transaction", err)
	}
	return transaction, nil
}

// List returns transactions matching the filter, newest date first.
func (s *TransactionJournal) List(filter TransactionFilter) ([]models.Transaction, error) {
	q := s.db.Order("date DESC")
	if filter.PropertyID != nil {
		q = q.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.CreditID != nil {
		q = q.Where("credit_id = ?", *filter.CreditID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.DateFrom != nil {
		q = q.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("date <= ?", *filter.DateTo)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		return nil, apperr.Storage("list transactions", err)
	}
	return transactions, nil
}

// Get returns one transaction.
func (s *TransactionJournal) Get(id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.db.First(&transaction, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("transaction", id.String())
	}
	if err != nil {
		return nil, apperr.Storage("get transaction", err)
	}
	return &transaction, nil
}

// Update applies a partial update, re-validating the merged record.
func (s *TransactionJournal) Update(id uuid.UUID, patch TransactionPatch) (*models.Transaction, error) {
	transaction, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.CreditID != nil {
		transaction.CreditID = patch.CreditID
	}
	if patch.Date != nil {
		transaction.Date = *patch.Date
	}
	if patch.Type != nil {
		transaction.Type = *patch.Type
	}
	if patch.Category != nil {
		transaction.Category = *patch.Category
	}
	if patch.Amount != nil {
		transaction.Amount = *patch.Amount
	}
	if patch.Description != nil {
		transaction.Description = *patch.Description
	}
	if patch.Recurring != nil {
		transaction.Recurring = *patch.Recurring
	}

	if err := s.validateTransaction(transaction); err != nil {
		return nil, err
	}
	if err := s.db.Save(transaction).Error; err != nil {
		return nil, apperr.Storage("update transaction", err)
	}
	return transaction, nil
}

// Delete removes a transaction unconditionally. Derived credit balances
// simply see one fewer payment on their next read.
func (s *TransactionJournal) Delete(id uuid.UUID) error {
	transaction, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(transaction).Error; err != nil {
		return apperr.Storage("delete transaction", err)
	}
	return nil
}
