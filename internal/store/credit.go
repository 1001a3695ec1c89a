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

var (
	interestRateMin = decimal.Zero
	interestRateMax = decimal.NewFromInt(100)
)

// CreditLedger owns loan records. The reducing balance is never stored;
// it is recomputed from the linked payment transactions on every read.
type CreditLedger struct {
	db *gorm.DB
}

// NewCreditLedger creates a new credit ledger
func NewCreditLedger(db *gorm.DB) *CreditLedger {
	return &CreditLedger{db: db}
}

// CreditInput carries the fields of a new credit.
type CreditInput struct {
	PropertyID     uuid.UUID
	Name           string
	OriginalAmount decimal.Decimal
	InterestRate   decimal.Decimal
	MonthlyPayment decimal.Decimal
	StartDate      time.Time
	EndDate        *time.Time
}

// CreditPatch carries a partial update; nil fields stay unchanged.
type CreditPatch struct {
	Name           *string
	OriginalAmount *decimal.Decimal
	InterestRate   *decimal.Decimal
	MonthlyPayment *decimal.Decimal
	StartDate      *time.Time
	EndDate        *time.Time
}

func validateCredit(c *models.Credit) error {
	if c.Name == "" {
		return apperr.Validation("name_required", nil)
	}
	if !c.OriginalAmount.IsPositive() {
		return apperr.Validation("original_amount_not_positive", map[string]any{
			"original_amount": c.OriginalAmount.String(),
		})
	}
	if c.InterestRate.LessThan(interestRateMin) || c.InterestRate.GreaterThan(interestRateMax) {
		return apperr.Validation("interest_rate_out_of_range", map[string]any{
			"interest_rate": c.InterestRate.String(),
		})
	}
	if c.MonthlyPayment.GreaterThan(c.OriginalAmount) {
		return apperr.Validation("monthly_payment_exceeds_original", map[string]any{
			"monthly_payment": c.MonthlyPayment.String(),
			"original_amount": c.OriginalAmount.String(),
		})
	}
	if c.StartDate.After(time.Now()) {
		return apperr.Validation("start_date_in_future", map[string]any{
			"start_date": c.StartDate.Format("2006-01-02"),
		})
	}
	if c.EndDate != nil && !c.EndDate.After(c.StartDate) {
		return apperr.Validation("end_date_before_start", map[string]any{
			"start_date": c.StartDate.Format("2006-01-02"),
			"end_date":   c.EndDate.Format("2006-01-02"),
		})
	}
	return nil
}

// creditBalance computes original amount minus the sum of all linked
// transaction amounts. No floor at zero: overpayment yields a negative
// balance.
func creditBalance(db *gorm.DB, creditID uuid.UUID, originalAmount decimal.Decimal) (decimal.Decimal, error) {
	var paid decimal.Decimal
	err := db.Model(&models.Transaction{}).
		Where("credit_id = ?", creditID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&paid).Error
	if err != nil {
		return decimal.Zero, apperr.Storage("sum credit payments", err)
	}
	return originalAmount.Sub(paid), nil
}

// Create validates and persists a new credit. The owning property must
// exist.
func (s *CreditLedger) Create(in CreditInput) (*models.Credit, error) {
	if err := s.db.First(&models.Property{}, "id = ?", in.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("property", in.PropertyID.String())
		}
		return nil, apperr.Storage("get property", err)
	}

	credit := &models.Credit{
		PropertyID:     in.PropertyID,
		Name:           in.Name,
		OriginalAmount: in.OriginalAmount,
		InterestRate:   in.InterestRate,
		MonthlyPayment: in.MonthlyPayment,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
	}
	if err := validateCredit(credit); err != nil {
		return nil, err
	}
	if err := s.db.Create(credit).Error; err != nil {
		return nil, apperr.Storage("create credit", err)
	}
	// a fresh credit has no payments yet
	balance := credit.OriginalAmount
	credit.CurrentBalance = &balance
	return credit, nil
}

// List returns credits, optionally filtered by property, with balances
// computed.
func (s *CreditLedger) List(propertyID *uuid.UUID) ([]models.Credit, error) {
	q := s.db.Order("created_at")
	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	}
	var credits []models.Credit
	if err := q.Find(&credits).Error; err != nil {
		return nil, apperr.Storage("list credits", err)
	}
	for i := range credits {
		balance, err := creditBalance(s.db, credits[i].ID, credits[i].OriginalAmount)
		if err != nil {
			return nil, err
		}
		credits[i].CurrentBalance = &balance
	}
	return credits, nil
}

// Get returns one credit with its balance computed.
func (s *CreditLedger) Get(id uuid.UUID) (*models.Credit, error) {
	var credit models.Credit
	err := s.db.First(&credit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("credit", id.String())
	}
	if err != nil {
		return nil, apperr.Storage("get credit", err)
	}
	balance, err := creditBalance(s.db, credit.ID, credit.OriginalAmount)
	if err != nil {
		return nil, err
	}
	credit.CurrentBalance = &balance
	return &credit, nil
}

// CurrentBalance recomputes the outstanding balance of a credit.
func (s *CreditLedger) CurrentBalance(id uuid.UUID) (decimal.Decimal, error) {
	credit, err := s.Get(id)
	if err != nil {
		return decimal.Zero, err
	}
	return *credit.CurrentBalance, nil
}

// Update applies a partial update, re-validating the merged record.
func (s *CreditLedger) Update(id uuid.UUID, patch CreditPatch) (*models.Credit, error) {
	var credit models.Credit
	err := s.db.First(&credit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("credit", id.String())
	}
	if err != nil {
		return nil, apperr.Storage("get credit", err)
	}

	if patch.Name != nil {
		credit.Name = *patch.Name
	}
	if patch.OriginalAmount != nil {
		credit.OriginalAmount = *patch.OriginalAmount
	}
	if patch.InterestRate != nil {
		credit.InterestRate = *patch.InterestRate
	}
	if patch.MonthlyPayment != nil {
		credit.MonthlyPayment = *patch.MonthlyPayment
	}
	if patch.StartDate != nil {
		credit.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		credit.EndDate = patch.EndDate
	}

	if err := validateCredit(&credit); err != nil {
		return nil, err
	}
	if err := s.db.Save(&credit).Error; err != nil {
		return nil, apperr.Storage("update credit", err)
	}
	balance, err := creditBalance(s.db, credit.ID, credit.OriginalAmount)
	if err != nil {
		return nil, err
	}
	credit.CurrentBalance = &balance
	return &credit, nil
}

// Delete removes a credit unconditionally. Transactions that referenced
// it keep existing but lose the link: their credit_id is set to NULL in
// the same database transaction, so no dangling reference survives.
func (s *CreditLedger) Delete(id uuid.UUID) error {
	var credit models.Credit
	err := s.db.First(&credit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("credit", id.String())
	}
	if err != nil {
		return apperr.Storage("get credit", err)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).
			Where("credit_id = ?", id).
			Update("credit_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&credit).Error
	})
	if err != nil {
		return apperr.Storage("delete credit", err)
	}
	return nil
}
