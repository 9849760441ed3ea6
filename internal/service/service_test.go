package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"btc-backoffice/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see a different :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Location{},
		&models.Salesperson{},
		&models.Product{},
		&models.TransitionLog{},
		&models.Invoice{},
		&models.InvoiceItem{},
	))
	return db
}

func seedSalesperson(t *testing.T, db *gorm.DB, code string) *models.Salesperson {
	t.Helper()
	sp := &models.Salesperson{Code: code, Name: "SP " + code, Email: code + "@btc.test", PasswordHash: "x", IsActive: true}
	require.NoError(t, db.Create(sp).Error)
	return sp
}

func seedProduct(t *testing.T, db *gorm.DB, sku string, state models.ProductState, holder *uint) *models.Product {
	t.Helper()
	p := &models.Product{
		SKU:           sku,
		Name:          "Test " + sku,
		State:         state,
		SalespersonID: holder,
		GrossWeight:   decimal.RequireFromString("12.5"),
		StoneWeight:   decimal.RequireFromString("2.5"),
		NetWeight:     decimal.RequireFromString("10"),
		PureWeight:    decimal.RequireFromString("10"),
		MakingRate:    decimal.RequireFromString("50"),
		MakingAmt:     decimal.RequireFromString("20"),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}
