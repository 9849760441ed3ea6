package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is an immutable snapshot taken at sale time. Rows are created once
// and never updated, so regenerating the printable document from a stored
// invoice is idempotent.
type Invoice struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	InvoiceNo     string      `gorm:"size:50;uniqueIndex;not null" json:"invoice_no"`
	SalespersonID uint        `gorm:"index;not null" json:"salesperson_id"`
	Salesperson   Salesperson `gorm:"foreignKey:SalespersonID" json:"salesperson"`

	CustomerName    string `gorm:"size:100" json:"customer_name"`
	CustomerEmail   string `gorm:"size:100" json:"customer_email"`
	CustomerPhone   string `gorm:"size:20" json:"customer_phone"`
	CustomerAddress string `gorm:"type:text" json:"customer_address"`

	// Rate pinned by the caller at sale time, currency per troy ounce.
	GoldRate decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"gold_rate"`

	TaxPercent      decimal.Decimal `gorm:"type:decimal(6,3)" json:"tax_percent"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(6,3)" json:"discount_percent"`
	ShippingAmount  decimal.Decimal `gorm:"type:decimal(20,4)" json:"shipping_amount"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"tax_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"discount_amount"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"grand_total"`

	Items     []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
	CreatedAt time.Time     `json:"created_at"`
}

// InvoiceItem freezes a product's physical and pricing fields at sale time.
type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"invoice_id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`

	SKU         string          `gorm:"size:50" json:"sku"`
	Name        string          `gorm:"size:150" json:"name"`
	Karat       int             `json:"karat"`
	Purity      decimal.Decimal `gorm:"type:decimal(6,3)" json:"purity"`
	GrossWeight decimal.Decimal `gorm:"type:decimal(12,3)" json:"gross_weight"`
	StoneWeight decimal.Decimal `gorm:"type:decimal(12,3)" json:"stone_weight"`
	NetWeight   decimal.Decimal `gorm:"type:decimal(12,3)" json:"net_weight"`
	PureWeight  decimal.Decimal `gorm:"type:decimal(12,3)" json:"pure_weight"`
	MakingRate  decimal.Decimal `gorm:"type:decimal(20,4)" json:"making_rate"`
	MakingAmt   decimal.Decimal `gorm:"type:decimal(20,4)" json:"making_amount"`

	PureGoldValue decimal.Decimal `gorm:"type:decimal(20,4)" json:"pure_gold_value"`
	NetAmount     decimal.Decimal `gorm:"type:decimal(20,4)" json:"net_amount"`
}

// GoldRate rows are appended on every admin update; the latest row is the
// current board rate.
type GoldRate struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Rate      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"rate"`
	UpdatedBy uint            `json:"updated_by"`
	CreatedAt time.Time       `json:"created_at"`
}
