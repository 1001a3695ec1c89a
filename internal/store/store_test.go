package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/HelplessSneeker/noessi-immo/internal/database"
	"github.com/HelplessSneeker/noessi-immo/internal/models"
	"github.com/HelplessSneeker/noessi-immo/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.InitSchema(db))
	return db
}

func newTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	return storage.New(t.TempDir(), 50*1024*1024)
}

func seedProperty(t *testing.T, db *gorm.DB) *models.Property {
	t.Helper()
	property, err := NewPropertyStore(db).Create(PropertyInput{
		Name:    "Wohnung A",
		Address: "Hauptstraße 1",
	})
	require.NoError(t, err)
	return property
}

func seedCredit(t *testing.T, db *gorm.DB, property *models.Property) *models.Credit {
	t.Helper()
	credit, err := NewCreditLedger(db).Create(CreditInput{
		PropertyID:     property.ID,
		Name:           "Hypothek",
		OriginalAmount: dec(100000),
		InterestRate:   decimal.NewFromFloat(2.5),
		MonthlyPayment: dec(500),
		StartDate:      date(2023, 1, 1),
	})
	require.NoError(t, err)
	return credit
}

func dec(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
