package store

import (
	"errors"

	"github.com/HelplessSneeker/noessi-immo/internal/apperr"
	"github.com/HelplessSneeker/noessi-immo/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PropertySummary is a computed, non-persisted rollup of one property's
// finances.
type PropertySummary struct {
	Property           models.Property `json:"property"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	Balance            decimal.Decimal `json:"balance"`
	TotalCreditBalance decimal.Decimal `json:"total_credit_balance"`
	DocumentCount      int64           `json:"document_count"`
}

// SummaryAggregator computes per-property rollups by querying the other
// stores' tables. Read-only; safe to call repeatedly and concurrently.
type SummaryAggregator struct {
	db *gorm.DB
}

// NewSummaryAggregator creates a new summary aggregator
func NewSummaryAggregator(db *gorm.DB) *SummaryAggregator {
	return &SummaryAggregator{db: db}
}

func (s *SummaryAggregator) sumTransactions(propertyID uuid.UUID, txType models.TransactionType) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := s.db.Model(&models.Transaction{}).
		Where("property_id = ? AND type = ?", propertyID, txType).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, apperr.Storage("sum transactions", err)
	}
	return sum, nil
}

// Summarize computes the rollup for one property. Every figure is
// recomputed from the current table state on each call.
func (s *SummaryAggregator) Summarize(propertyID uuid.UUID) (*PropertySummary, error) {
	var property models.Property
	err := s.db.First(&property, "id = ?", propertyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("property", propertyID.String())
	}
	if err != nil {
		return nil, apperr.Storage("get property", err)
	}

	income, err := s.sumTransactions(propertyID, models.TransactionTypeIncome)
	if err != nil {
		return nil, err
	}
	expenses, err := s.sumTransactions(propertyID, models.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	var credits []models.Credit
	if err := s.db.Where("property_id = ?", propertyID).Find(&credits).Error; err != nil {
		return nil, apperr.Storage("list credits", err)
	}
	totalCreditBalance := decimal.Zero
	for _, credit := range credits {
		balance, err := creditBalance(s.db, credit.ID, credit.OriginalAmount)
		if err != nil {
			return nil, err
		}
		totalCreditBalance = totalCreditBalance.Add(balance)
	}

	var documentCount int64
	if err := s.db.Model(&models.Document{}).Where("property_id = ?", propertyID).Count(&documentCount).Error; err != nil {
		return nil, apperr.Storage("count documents", err)
	}

	return &PropertySummary{
		Property:           property,
		TotalIncome:        income,
		TotalExpenses:      expenses,
		Balance:            income.Sub(expenses),
		TotalCreditBalance: totalCreditBalance,
		DocumentCount:      documentCount,
	}, nil
}
