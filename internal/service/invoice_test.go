package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"btc-backoffice/internal/apperr"
	"btc-backoffice/internal/ledger"
	"btc-backoffice/internal/models"
)

func TestCreateInvoice_SingleItemScenario(t *testing.T) {
	db := newTestDB(t)
	builder := NewInvoiceBuilder(db, "INV")
	ctx := context.Background()

	sp := seedSalesperson(t, db, "S1")
	p2 := seedProduct(t, db, "P2", models.StateInHand, &sp.ID)

	invoice, zeroRate, err := builder.CreateInvoice(ctx, sp.ID, CreateInvoiceInput{
		ProductIDs:      []uint{p2.ID},
		Customer:        Customer{Name: "Jane Doe", Email: "jane@example.com"},
		TaxPercent:      decimal.RequireFromString("5"),
		DiscountPercent: decimal.RequireFromString("2"),
		ShippingAmount:  decimal.RequireFromString("10"),
		GoldRate:        decimal.RequireFromString("2000"),
	})
	require.NoError(t, err)
	assert.False(t, zeroRate)

	require.Len(t, invoice.Items, 1)
	item := invoice.Items[0]
	assert.Equal(t, "P2", item.SKU)
	assert.Equal(t, "643.02", item.PureGoldValue.StringFixed(2))
	assert.Equal(t, "713.02", item.NetAmount.StringFixed(2))
	assert.Equal(t, "713.02", invoice.Subtotal.StringFixed(2))

	var got models.Product
	require.NoError(t, db.First(&got, p2.ID).Error)
	assert.Equal(t, models.StateSold, got.State)

	cols, err := ledger.New(db).Collections(ctx, sp.ID)
	require.NoError(t, err)
	require.Len(t, cols.Sold, 1)
	assert.Equal(t, "P2", cols.Sold[0].SKU)

	// the snapshot is stored, not just returned
	stored, err := builder.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.InvoiceNo, stored.InvoiceNo)
	require.Len(t, stored.Items, 1)

	// a sold product can no longer be returned
	results, err := NewTransfer(db).ApplyReturn(ctx, []uint{p2.ID}, ledger.Actor{ID: sp.ID, Role: ledger.RoleSalesperson})
	require.NoError(t, err)
	assert.False(t, results[0].OK)
	assert.Equal(t, apperr.InvalidTransition, results[0].Kind)
}

func TestCreateInvoice_AllOrNothing(t *testing.T) {
	db := newTestDB(t)
	builder := NewInvoiceBuilder(db, "INV")
	ctx := context.Background()

	sp := seedSalesperson(t, db, "S1")
	inHand := seedProduct(t, db, "OK", models.StateInHand, &sp.ID)
	pending := seedProduct(t, db, "BAD", models.StatePendingAcceptance, &sp.ID)

	_, _, err := builder.CreateInvoice(ctx, sp.ID, CreateInvoiceInput{
		ProductIDs: []uint{inHand.ID, pending.ID},
		GoldRate:   decimal.RequireFromString("2000"),
	})
	assert.Equal(t, apperr.ProductNotAvailableForSale, apperr.KindOf(err))

	// nothing may have been written
	var got models.Product
	require.NoError(t, db.First(&got, inHand.ID).Error)
	assert.Equal(t, models.StateInHand, got.State)

	var invoices int64
	db.Model(&models.Invoice{}).Count(&invoices)
	assert.Zero(t, invoices)
}

func TestCreateInvoice_WrongHolder(t *testing.T) {
	db := newTestDB(t)
	builder := NewInvoiceBuilder(db, "INV")

	s1 := seedSalesperson(t, db, "S1")
	s2 := seedSalesperson(t, db, "S2")
	p := seedProduct(t, db, "P1", models.StateInHand, &s1.ID)

	_, _, err := builder.CreateInvoice(context.Background(), s2.ID, CreateInvoiceInput{
		ProductIDs: []uint{p.ID},
		GoldRate:   decimal.RequireFromString("2000"),
	})
	assert.Equal(t, apperr.ProductNotAvailableForSale, apperr.KindOf(err))
}

func TestCreateInvoice_MissingProduct(t *testing.T) {
	db := newTestDB(t)
	builder := NewInvoiceBuilder(db, "INV")

	sp := seedSalesperson(t, db, "S1")

	_, _, err := builder.CreateInvoice(context.Background(), sp.ID, CreateInvoiceInput{
		ProductIDs: []uint{12345},
		GoldRate:   decimal.RequireFromString("2000"),
	})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCreateInvoice_EmptyInput(t *testing.T) {
	db := newTestDB(t)
	builder := NewInvoiceBuilder(db, "INV")

	_, _, err := builder.CreateInvoice(context.Background(), 1, CreateInvoiceInput{})
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
}

func TestCreateInvoice_ZeroRateWarning(t *testing.T) {
	db := newTestDB(t)
	builder := NewInvoiceBuilder(db, "INV")

	sp := seedSalesperson(t, db, "S1")
	p := seedProduct(t, db, "P1", models.StateInHand, &sp.ID)

	invoice, zeroRate, err := builder.CreateInvoice(context.Background(), sp.ID, CreateInvoiceInput{
		ProductIDs: []uint{p.ID},
		GoldRate:   decimal.Zero,
	})
	require.NoError(t, err)
	assert.True(t, zeroRate)
	assert.True(t, invoice.Items[0].PureGoldValue.IsZero())
	// still priced: making charges alone
	assert.Equal(t, "70.00", invoice.Subtotal.StringFixed(2))
}

func TestCreateInvoice_NumberFormat(t *testing.T) {
	db := newTestDB(t)
	builder := NewInvoiceBuilder(db, "INV")

	sp := seedSalesperson(t, db, "S1")
	p := seedProduct(t, db, "P1", models.StateInHand, &sp.ID)

	invoice, _, err := builder.CreateInvoice(context.Background(), sp.ID, CreateInvoiceInput{
		ProductIDs: []uint{p.ID},
		GoldRate:   decimal.RequireFromString("2000"),
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^INV-\d{8}-[0-9A-F]{6}$`), invoice.InvoiceNo)
}

func TestCreateInvoice_MultiItemTotals(t *testing.T) {
	db := newTestDB(t)
	builder := NewInvoiceBuilder(db, "INV")
	ctx := context.Background()

	sp := seedSalesperson(t, db, "S1")

	// 713.02... + 100 + 50 line net amounts
	full := seedProduct(t, db, "FULL", models.StateInHand, &sp.ID)
	flat1 := &models.Product{SKU: "FLAT1", Name: "Flat 1", State: models.StateInHand, SalespersonID: &sp.ID,
		MakingAmt: decimal.RequireFromString("100")}
	flat2 := &models.Product{SKU: "FLAT2", Name: "Flat 2", State: models.StateInHand, SalespersonID: &sp.ID,
		MakingAmt: decimal.RequireFromString("50")}
	require.NoError(t, db.Create(flat1).Error)
	require.NoError(t, db.Create(flat2).Error)

	invoice, _, err := builder.CreateInvoice(ctx, sp.ID, CreateInvoiceInput{
		ProductIDs:      []uint{full.ID, flat1.ID, flat2.ID},
		TaxPercent:      decimal.RequireFromString("5"),
		DiscountPercent: decimal.RequireFromString("2"),
		ShippingAmount:  decimal.RequireFromString("10"),
		GoldRate:        decimal.RequireFromString("2000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "863.02", invoice.Subtotal.StringFixed(2))
	assert.Equal(t, "43.15", invoice.TaxAmount.StringFixed(2))
	assert.Equal(t, "17.26", invoice.DiscountAmount.StringFixed(2))
	assert.Equal(t, "898.92", invoice.GrandTotal.StringFixed(2))
}

func TestListInvoices_OwnOnly(t *testing.T) {
	db := newTestDB(t)
	builder := NewInvoiceBuilder(db, "INV")
	ctx := context.Background()

	s1 := seedSalesperson(t, db, "S1")
	s2 := seedSalesperson(t, db, "S2")
	p1 := seedProduct(t, db, "P1", models.StateInHand, &s1.ID)
	p2 := seedProduct(t, db, "P2", models.StateInHand, &s2.ID)

	_, _, err := builder.CreateInvoice(ctx, s1.ID, CreateInvoiceInput{ProductIDs: []uint{p1.ID}, GoldRate: decimal.RequireFromString("2000")})
	require.NoError(t, err)
	_, _, err = builder.CreateInvoice(ctx, s2.ID, CreateInvoiceInput{ProductIDs: []uint{p2.ID}, GoldRate: decimal.RequireFromString("2000")})
	require.NoError(t, err)

	invoices, err := builder.ListInvoices(ctx, s1.ID)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, s1.ID, invoices[0].SalespersonID)
}
