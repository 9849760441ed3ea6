package handler

import (
	"net/http"

	"btc-backoffice/internal/models"
	"btc-backoffice/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type InventoryHandler struct{}

func (h *InventoryHandler) ListProducts(c *gin.Context) {
	query := database.DB.Preload("Salesperson")
	if state := c.Query("state"); state != "" {
		query = query.Where("state = ?", state)
	}

	var products []models.Product
	if err := query.Order("created_at desc").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct serves the barcode-scan lookup on the sell page: the param can
// be a numeric id or a SKU.
func (h *InventoryHandler) GetProduct(c *gin.Context) {
	key := c.Param("id")

	var product models.Product
	if err := database.DB.Where("id = ? OR sku = ? OR barcode = ?", key, key, key).First(&product).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

type CreateProductRequest struct {
	SKU         string          `json:"sku" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	SubCategory string          `json:"sub_category"`
	DesignCode  string          `json:"design_code"`
	Barcode     string          `json:"barcode"`
	Karat       int             `json:"karat"`
	Purity      decimal.Decimal `json:"purity"`
	GoldType    string          `json:"gold_type"`
	GrossWeight decimal.Decimal `json:"gross_weight"`
	StoneWeight decimal.Decimal `json:"stone_weight"`
	NetWeight   decimal.Decimal `json:"net_weight"`
	PureWeight  decimal.Decimal `json:"pure_weight"`
	HasStones   bool            `json:"has_stones"`
	StoneType   string          `json:"stone_type"`
	StoneCount  int             `json:"stone_count"`
	MakingRate  decimal.Decimal `json:"making_rate"`
	MakingAmt   decimal.Decimal `json:"making_amount"`
	Price       decimal.Decimal `json:"price"`
}

func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.GrossWeight.IsNegative() || req.StoneWeight.IsNegative() ||
		req.NetWeight.IsNegative() || req.PureWeight.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Weights must not be negative"})
		return
	}

	product := models.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		SubCategory: req.SubCategory,
		DesignCode:  req.DesignCode,
		Barcode:     req.Barcode,
		Karat:       req.Karat,
		Purity:      req.Purity,
		GoldType:    req.GoldType,
		GrossWeight: req.GrossWeight,
		StoneWeight: req.StoneWeight,
		NetWeight:   req.NetWeight,
		PureWeight:  req.PureWeight,
		HasStones:   req.HasStones,
		StoneType:   req.StoneType,
		StoneCount:  req.StoneCount,
		MakingRate:  req.MakingRate,
		MakingAmt:   req.MakingAmt,
		Price:       req.Price,
		State:       models.StateAvailable,
	}

	if err := database.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product (SKU might be duplicate)"})
		return
	}

	c.JSON(http.StatusCreated, product)
}
