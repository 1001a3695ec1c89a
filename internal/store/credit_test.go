package store

import (
	"testing"
	"time"

	"github.com/HelplessSneeker/noessi-immo/internal/apperr"
	"github.com/HelplessSneeker/noessi-immo/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditCreateValidation(t *testing.T) {
	db := newTestDB(t)
	ledger := NewCreditLedger(db)
	property := seedProperty(t, db)

	base := CreditInput{
		PropertyID:     property.ID,
		Name:           "Hypothek",
		OriginalAmount: dec(100000),
		InterestRate:   decimal.NewFromFloat(2.5),
		MonthlyPayment: dec(500),
		StartDate:      date(2023, 1, 1),
	}

	tests := []struct {
		name    string
		mutate  func(*CreditInput)
		wantKey string
	}{
		{"zero original amount", func(in *CreditInput) { in.OriginalAmount = dec(0) }, "original_amount_not_positive"},
		{"negative original amount", func(in *CreditInput) { in.OriginalAmount = dec(-5) }, "original_amount_not_positive"},
		{"interest rate above 100", func(in *CreditInput) { in.InterestRate = dec(101) }, "interest_rate_out_of_range"},
		{"negative interest rate", func(in *CreditInput) { in.InterestRate = dec(-1) }, "interest_rate_out_of_range"},
		{"payment exceeds principal", func(in *CreditInput) { in.MonthlyPayment = dec(100001) }, "monthly_payment_exceeds_original"},
		{"start date in future", func(in *CreditInput) { in.StartDate = time.Now().AddDate(0, 1, 0) }, "start_date_in_future"},
		{"end date before start", func(in *CreditInput) {
			end := date(2022, 12, 31)
			in.EndDate = &end
		}, "end_date_before_start"},
		{"end date equals start", func(in *CreditInput) {
			end := date(2023, 1, 1)
			in.EndDate = &end
		}, "end_date_before_start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := ledger.Create(in)
			appErr := requireKind(t, err, apperr.KindValidation)
			assert.Equal(t, tt.wantKey, appErr.MessageKey)
		})
	}

	// boundary values pass
	in := base
	in.InterestRate = dec(0)
	_, err := ledger.Create(in)
	require.NoError(t, err)
	in = base
	in.InterestRate = dec(100)
	in.MonthlyPayment = dec(100000)
	_, err = ledger.Create(in)
	require.NoError(t, err)
}

func TestCreditCreateUnknownProperty(t *testing.T) {
	db := newTestDB(t)
	ledger := NewCreditLedger(db)

	_, err := ledger.Create(CreditInput{
		PropertyID:     uuid.New(),
		Name:           "Hypothek",
		OriginalAmount: dec(100000),
		InterestRate:   dec(2),
		MonthlyPayment: dec(500),
		StartDate:      date(2023, 1, 1),
	})
	requireKind(t, err, apperr.KindNotFound)
}

func TestCreditBalanceRecurrence(t *testing.T) {
	db := newTestDB(t)
	ledger := NewCreditLedger(db)
	journal := NewTransactionJournal(db)
	property := seedProperty(t, db)
	credit := seedCredit(t, db, property)

	// no payments yet: balance equals the original amount
	require.NotNil(t, credit.CurrentBalance)
	assert.True(t, credit.CurrentBalance.Equal(dec(100000)))

	balance, err := ledger.CurrentBalance(credit.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec(100000)))

	// one linked payment of 500 reduces the balance to 99500
	_, err = journal.Create(TransactionInput{
		PropertyID: property.ID,
		CreditID:   &credit.ID,
		Date:       date(2023, 2, 1),
		Type:       models.TransactionTypeExpense,
		Category:   models.CategoryLoanPayment,
		Amount:     dec(500),
	})
	require.NoError(t, err)

	balance, err = ledger.CurrentBalance(credit.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec(99500)), "got %s", balance)

	// recomputed identically on every read
	again, err := ledger.CurrentBalance(credit.ID)
	require.NoError(t, err)
	assert.True(t, again.Equal(balance))
}

func TestCreditBalanceMayGoNegative(t *testing.T) {
	db := newTestDB(t)
	ledger := NewCreditLedger(db)
	journal := NewTransactionJournal(db)
	property := seedProperty(t, db)

	credit, err := ledger.Create(CreditInput{
		PropertyID:     property.ID,
		Name:           "Restschuld",
		OriginalAmount: dec(1000),
		InterestRate:   dec(1),
		MonthlyPayment: dec(600),
		StartDate:      date(2023, 1, 1),
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = journal.Create(TransactionInput{
			PropertyID: property.ID,
			CreditID:   &credit.ID,
			Date:       date(2023, time.Month(2+i), 1),
			Type:       models.TransactionTypeExpense,
			Category:   models.CategoryLoanPayment,
			Amount:     dec(600),
		})
		require.NoError(t, err)
	}

	// overpayment: no floor at zero
	balance, err := ledger.CurrentBalance(credit.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec(-200)), "got %s", balance)
}

func TestCreditDeleteUnlinksTransactions(t *testing.T) {
	db := newTestDB(t)
	ledger := NewCreditLedger(db)
	journal := NewTransactionJournal(db)
	property := seedProperty(t, db)
	credit := seedCredit(t, db, property)

	tx, err := journal.Create(TransactionInput{
		PropertyID: property.ID,
		CreditID:   &credit.ID,
		Date:       date(2023, 2, 1),
		Type:       models.TransactionTypeExpense,
		Category:   models.CategoryLoanPayment,
		Amount:     dec(500),
	})
	require.NoError(t, err)

	require.NoError(t, ledger.Delete(credit.ID))

	_, err = ledger.Get(credit.ID)
	requireKind(t, err, apperr.KindNotFound)

	// the transaction survives with its credit reference nulled
	got, err := journal.Get(tx.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CreditID)
}

func TestCreditListFiltersByProperty(t *testing.T) {
	db := newTestDB(t)
	ledger := NewCreditLedger(db)
	propertyA := seedProperty(t, db)
	propertyB := seedProperty(t, db)
	seedCredit(t, db, propertyA)

	all, err := ledger.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	forB, err := ledger.List(&propertyB.ID)
	require.NoError(t, err)
	assert.Empty(t, forB)

	forA, err := ledger.List(&propertyA.ID)
	require.NoError(t, err)
	require.Len(t, forA, 1)
	require.NotNil(t, forA[0].CurrentBalance)
	assert.True(t, forA[0].CurrentBalance.Equal(dec(100000)))
}

func TestCreditUpdateRevalidatesMergedRecord(t *testing.T) {
	db := newTestDB(t)
	ledger := NewCreditLedger(db)
	property := seedProperty(t, db)
	credit := seedCredit(t, db, property)

	// lowering the principal below the monthly payment is rejected
	small := dec(100)
	_, err := ledger.Update(credit.ID, CreditPatch{OriginalAmount: &small})
	requireKind(t, err, apperr.KindValidation)

	rate := decimal.NewFromFloat(3.75)
	updated, err := ledger.Update(credit.ID, CreditPatch{InterestRate: &rate})
	require.NoError(t, err)
	assert.True(t, updated.InterestRate.Equal(rate))
	assert.Equal(t, "Hypothek", updated.Name)
}
