package store

import (
	"testing"
	"time"

	"github.com/HelplessSneeker/noessi-immo/internal/apperr"
	"github.com/HelplessSneeker/noessi-immo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionCreateValidation(t *testing.T) {
	db := newTestDB(t)
	journal := NewTransactionJournal(db)
	property := seedProperty(t, db)

	base := TransactionInput{
		PropertyID: property.ID,
		Date:       date(2024, 5, 1),
		Type:       models.TransactionTypeIncome,
		Category:   models.CategoryRent,
		Amount:     dec(900),
	}

	tests := []struct {
		name    string
		mutate  func(*TransactionInput)
		wantKey string
	}{
		{"zero amount", func(in *TransactionInput) { in.Amount = dec(0) }, "amount_not_positive"},
		{"negative amount", func(in *TransactionInput) { in.Amount = dec(-10) }, "amount_not_positive"},
		{"date too far ahead", func(in *TransactionInput) { in.Date = time.Now().AddDate(0, 0, 400) }, "date_too_far_in_future"},
		{"unknown type", func(in *TransactionInput) { in.Type = "transfer" }, "invalid_type"},
		{"unknown category", func(in *TransactionInput) { in.Category = "misc" }, "invalid_category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := journal.Create(in)
			appErr := requireKind(t, err, apperr.KindValidation)
			assert.Equal(t, tt.wantKey, appErr.MessageKey)
		})
	}

	// a date within the allowed window passes
	in := base
	in.Date = time.Now().AddDate(0, 0, 300)
	_, err := journal.Create(in)
	require.NoError(t, err)
}

func TestTransactionLoanPaymentLinkageRules(t *testing.T) {
	db := newTestDB(t)
	journal := NewTransactionJournal(db)
	property := seedProperty(t, db)
	credit := seedCredit(t, db, property)

	// loan_payment without a credit link
	_, err := journal.Create(TransactionInput{
		PropertyID: property.ID,
		Date:       date(2024, 5, 1),
		Type:       models.TransactionTypeExpense,
		Category:   models.CategoryLoanPayment,
		Amount:     dec(500),
	})
	appErr := requireKind(t, err, apperr.KindValidation)
	assert.Equal(t, "loan_payment_requires_credit", appErr.MessageKey)

	// loan_payment as income
	_, err = journal.Create(TransactionInput{
		PropertyID: property.ID,
		CreditID:   &credit.ID,
		Date:       date(2024, 5, 1),
		Type:       models.TransactionTypeIncome,
		Category:   models.CategoryLoanPayment,
		Amount:     dec(500),
	})
	appErr = requireKind(t, err, apperr.KindValidation)
	assert.Equal(t, "loan_payment_must_be_expense", appErr.MessageKey)

	// credit link on a non loan_payment category
	_, err = journal.Create(TransactionInput{
		PropertyID: property.ID,
		CreditID:   &credit.ID,
		Date:       date(2024, 5, 1),
		Type:       models.TransactionTypeExpense,
		Category:   models.CategoryRepair,
		Amount:     dec(500),
	})
	appErr = requireKind(t, err, apperr.KindValidation)
	assert.Equal(t, "credit_link_requires_loan_payment", appErr.MessageKey)
}

func TestTransactionCreditMustBelongToSameProperty(t *testing.T) {
	db := newTestDB(t)
	journal := NewTransactionJournal(db)
	propertyA := seedProperty(t, db)
	propertyB := seedProperty(t, db)
	creditA := seedCredit(t, db, propertyA)

	_, err := journal.Create(TransactionInput{
		PropertyID: propertyB.ID,
		CreditID:   &creditA.ID,
		Date:       date(2024, 5, 1),
		Type:       models.TransactionTypeExpense,
		Category:   models.CategoryLoanPayment,
		Amount:     dec(500),
	})
	appErr := requireKind(t, err, apperr.KindValidation)
	assert.Equal(t, "credit_wrong_property", appErr.MessageKey)
}

func TestTransactionListFilters(t *testing.T) {
	db := newTestDB(t)
	journal := NewTransactionJournal(db)
	property := seedProperty(t, db)
	other := seedProperty(t, db)

	mkTx := func(p *models.Property, day int, txType models.TransactionType, category models.TransactionCategory, amount int64) {
		t.Helper()
		_, err := journal.Create(TransactionInput{
			PropertyID: p.ID,
			Date:       date(2024, 3, day),
			Type:       txType,
			Category:   category,
			Amount:     dec(amount),
		})
		require.NoError(t, err)
	}

	mkTx(property, 1, models.TransactionTypeIncome, models.CategoryRent, 900)
	mkTx(property, 10, models.TransactionTypeExpense, models.CategoryRepair, 120)
	mkTx(property, 20, models.TransactionTypeExpense, models.CategoryTax, 80)
	mkTx(other, 5, models.TransactionTypeIncome, models.CategoryRent, 700)

	all, err := journal.List(TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	// newest date first
	assert.Equal(t, date(2024, 3, 20).Format("2006-01-02"), all[0].Date.Format("2006-01-02"))

	byProperty, err := journal.List(TransactionFilter{PropertyID: &property.ID})
	require.NoError(t, err)
	assert.Len(t, byProperty, 3)

	expenses, err := journal.List(TransactionFilter{
		PropertyID: &property.ID,
		Type:       models.TransactionTypeExpense,
	})
	require.NoError(t, err)
	assert.Len(t, expenses, 2)

	from := date(2024, 3, 5)
	to := date(2024, 3, 15)
	window, err := journal.List(TransactionFilter{
		PropertyID: &property.ID,
		DateFrom:   &from,
		DateTo:     &to,
	})
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, models.CategoryRepair, window[0].Category)

	limited, err := journal.List(TransactionFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestTransactionUpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	journal := NewTransactionJournal(db)
	property := seedProperty(t, db)

	tx, err := journal.Create(TransactionInput{
		PropertyID:  property.ID,
		Date:        date(2024, 5, 1),
		Type:        models.TransactionTypeIncome,
		Category:    models.CategoryRent,
		Amount:      dec(900),
		Description: "Mai",
	})
	require.NoError(t, err)

	amount := dec(950)
	updated, err := journal.Update(tx.ID, TransactionPatch{Amount: &amount})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec(950)))
	assert.Equal(t, "Mai", updated.Description)

	// merged record is re-validated
	bad := dec(-1)
	_, err = journal.Update(tx.ID, TransactionPatch{Amount: &bad})
	requireKind(t, err, apperr.KindValidation)

	require.NoError(t, journal.Delete(tx.ID))
	_, err = journal.Get(tx.ID)
	requireKind(t, err, apperr.KindNotFound)
}
