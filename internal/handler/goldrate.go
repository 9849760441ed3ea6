package handler

import (
	"net/http"

	"btc-backoffice/internal/models"
	"btc-backoffice/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RateHandler struct{}

// GetRate serves the current board rate (latest appended row). A zero rate is
// served but flagged so the dashboard can warn it is not live market data.
func (h *RateHandler) GetRate(c *gin.Context) {
	var rate models.GoldRate
	if err := database.DB.Order("id desc").First(&rate).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No gold rate has been set"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rate":       rate.Rate,
		"updated_at": rate.CreatedAt,
		"updated_by": rate.UpdatedBy,
		"warning":    rate.Rate.IsZero(),
	})
}

type UpdateRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

func (h *RateHandler) UpdateRate(c *gin.Context) {
	var req UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Rate.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rate must not be negative"})
		return
	}

	rate := models.GoldRate{
		Rate:      req.Rate,
		UpdatedBy: c.GetUint("userID"),
	}
	if err := database.DB.Create(&rate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update gold rate"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rate":       rate.Rate,
		"updated_at": rate.CreatedAt,
		"warning":    rate.Rate.IsZero(),
	})
}
