package handler

import (
	"net/http"

	"btc-backoffice/internal/models"
	"btc-backoffice/pkg/database"

	"github.com/gin-gonic/gin"
)

// SalesHandler serves the salesperson portal's own-profile view.
type SalesHandler struct{}

// GetMe returns the caller's profile plus the four derived product
// collections (pending, in-hand, return-applied, sold).
func (h *SalesHandler) GetMe(c *gin.Context) {
	salespersonID := c.GetUint("userID")

	var sp models.Salesperson
	if err := database.DB.Preload("Location").First(&sp, salespersonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Salesperson not found"})
		return
	}

	cols, err := ledgerForRequest(c).Collections(c.Request.Context(), sp.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product collections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"salesperson": sp, "products": cols})
}
