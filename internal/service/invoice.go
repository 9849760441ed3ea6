package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"btc-backoffice/internal/apperr"
	"btc-backoffice/internal/ledger"
	"btc-backoffice/internal/models"
	"btc-backoffice/internal/pricing"
)

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CreateInvoiceInput struct {
	ProductIDs      []uint
	Customer        Customer
	TaxPercent      decimal.Decimal
	DiscountPercent decimal.Decimal
	ShippingAmount  decimal.Decimal
	// GoldRate is pinned by the caller before the operation starts; the
	// builder never consults the live rate board mid-transaction.
	GoldRate decimal.Decimal
}

// InvoiceBuilder snapshots InHand products into immutable invoices and marks
// them Sold, all in one transaction.
type InvoiceBuilder struct {
	db     *gorm.DB
	prefix string
}

func NewInvoiceBuilder(db *gorm.DB, prefix string) *InvoiceBuilder {
	if prefix == "" {
		prefix = "INV"
	}
	return &InvoiceBuilder{db: db, prefix: prefix}
}

// CreateInvoice sells the named products for salespersonID. Unlike the bulk
// transfer operations this is all-or-nothing: if any product is not InHand
// under the caller, nothing is written. The returned bool is the zero-rate
// warning from the pricing calculator.
func (b *InvoiceBuilder) CreateInvoice(ctx context.Context, salespersonID uint, in CreateInvoiceInput) (*models.Invoice, bool, error) {
	if len(in.ProductIDs) == 0 {
		return nil, false, apperr.New(apperr.InvalidInput, "product_ids must not be empty")
	}

	db := b.db.WithContext(ctx)

	var products []models.Product
	if err := db.Where("id IN ?", in.ProductIDs).Find(&products).Error; err != nil {
		return nil, false, err
	}
	if len(products) != len(in.ProductIDs) {
		found := make(map[uint]bool, len(products))
		for _, p := range products {
			found[p.ID] = true
		}
		var missing []uint
		for _, id := range in.ProductIDs {
			if !found[id] {
				missing = append(missing, id)
			}
		}
		return nil, false, apperr.New(apperr.NotFound, "products not found: %v", missing)
	}

	actor := ledger.Actor{ID: salespersonID, Role: ledger.RoleSalesperson}
	for _, p := range products {
		if err := ledger.Check(p.State, ledger.EventSell, actor, p.SalespersonID); err != nil {
			return nil, false, apperr.New(apperr.ProductNotAvailableForSale,
				"product %d (%s) is not in hand under salesperson %d", p.ID, p.SKU, salespersonID)
		}
	}

	lines := make([]pricing.LineInput, len(products))
	for i, p := range products {
		lines[i] = pricing.LineInput{
			PureWeight: p.PureWeight,
			MakingRate: p.MakingRate,
			MakingAmt:  p.MakingAmt,
		}
	}
	lineResults, totals, err := pricing.PriceInvoice(in.GoldRate, lines, in.TaxPercent, in.DiscountPercent, in.ShippingAmount)
	if err != nil {
		return nil, false, err
	}

	invoice := models.Invoice{
		SalespersonID:   salespersonID,
		CustomerName:    in.Customer.Name,
		CustomerEmail:   in.Customer.Email,
		CustomerPhone:   in.Customer.Phone,
		CustomerAddress: in.Customer.Address,
		GoldRate:        in.GoldRate,
		TaxPercent:      in.TaxPercent,
		DiscountPercent: in.DiscountPercent,
		ShippingAmount:  in.ShippingAmount,
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		DiscountAmount:  totals.DiscountAmount,
		GrandTotal:      totals.GrandTotal,
	}
	for i, p := range products {
		invoice.Items = append(invoice.Items, models.InvoiceItem{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Name:          p.Name,
			Karat:         p.Karat,
			Purity:        p.Purity,
			GrossWeight:   p.GrossWeight,
			StoneWeight:   p.StoneWeight,
			NetWeight:     p.NetWeight,
			PureWeight:    p.PureWeight,
			MakingRate:    p.MakingRate,
			MakingAmt:     p.MakingAmt,
			PureGoldValue: lineResults[i].PureGoldValue,
			NetAmount:     lineResults[i].NetAmount,
		})
	}

	// The invoice number carries a random suffix; the unique column is the
	// actual uniqueness guarantee, so one collision gets one fresh number.
	const attempts = 2
	for attempt := 0; attempt < attempts; attempt++ {
		invoice.InvoiceNo = b.nextInvoiceNo()
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&invoice).Error; err != nil {
				return err
			}
			lg := ledger.New(tx)
			for _, p := range products {
				if err := lg.Apply(ctx, p.ID, ledger.EventSell, actor, 0); err != nil {
					return err
				}
			}
			return nil
		})
		if err == nil {
			return &invoice, totals.ZeroRateWarning, nil
		}
		if !isDuplicateKey(err) {
			return nil, false, err
		}
		invoice.ID = 0
		for i := range invoice.Items {
			invoice.Items[i].ID = 0
			invoice.Items[i].InvoiceID = 0
		}
	}
	return nil, false, apperr.New(apperr.ConflictRetry, "could not allocate a unique invoice number, retry")
}

// GetInvoice loads a stored invoice with its frozen line items.
func (b *InvoiceBuilder) GetInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := b.db.WithContext(ctx).Preload("Items").Preload("Salesperson").First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "invoice %d not found", id)
		}
		return nil, err
	}
	return &invoice, nil
}

// ListInvoices returns a salesperson's invoices, newest first.
func (b *InvoiceBuilder) ListInvoices(ctx context.Context, salespersonID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := b.db.WithContext(ctx).
		Preload("Items").
		Where("salesperson_id = ?", salespersonID).
		Order("created_at desc").
		Find(&invoices).Error
	return invoices, err
}

// nextInvoiceNo builds a number like INV-20250512-A3F19C.
func (b *InvoiceBuilder) nextInvoiceNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("%s-%s-%s", b.prefix, time.Now().Format("20060102"), suffix)
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
