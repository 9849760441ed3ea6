package handler

import (
	"net/http"

	"btc-backoffice/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	builder *service.InvoiceBuilder
}

func NewInvoiceHandler(db *gorm.DB, prefix string) *InvoiceHandler {
	return &InvoiceHandler{builder: service.NewInvoiceBuilder(db, prefix)}
}

type CreateInvoiceRequest struct {
	ProductIDs      []uint           `json:"product_ids" binding:"required"`
	Customer        service.Customer `json:"customer"`
	TaxPercent      decimal.Decimal  `json:"tax_percent"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	ShippingAmount  decimal.Decimal  `json:"shipping_amount"`
	GoldRate        decimal.Decimal  `json:"gold_rate"`
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	salespersonID := c.GetUint("userID")

	invoice, zeroRate, err := h.builder.CreateInvoice(c.Request.Context(), salespersonID, service.CreateInvoiceInput{
		ProductIDs:      req.ProductIDs,
		Customer:        req.Customer,
		TaxPercent:      req.TaxPercent,
		DiscountPercent: req.DiscountPercent,
		ShippingAmount:  req.ShippingAmount,
		GoldRate:        req.GoldRate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"invoice": invoice}
	if zeroRate {
		resp["warning"] = "gold rate was zero; invoice priced with no gold value"
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	invoices, err := h.builder.ListInvoices(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// GetInvoice serves a stored snapshot; re-reads are idempotent so the client
// can regenerate the printable document any number of times.
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	var id uint
	if err := parseUintParam(c, "id", &id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
		return
	}

	invoice, err := h.builder.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if invoice.SalespersonID != c.GetUint("userID") && c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": invoice})
}
