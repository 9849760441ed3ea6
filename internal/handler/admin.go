package handler

import (
	"fmt"
	"net/http"

	"btc-backoffice/internal/models"
	"btc-backoffice/internal/utils"
	"btc-backoffice/pkg/database"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{}

type CreateSalespersonRequest struct {
	Code       string `json:"code" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone"`
	Password   string `json:"password" binding:"required,min=6"`
	LocationID *uint  `json:"location_id"`
}

func (h *AdminHandler) CreateSalesperson(c *gin.Context) {
	var req CreateSalespersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	sp := models.Salesperson{
		Code:         req.Code,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hashedPassword,
		LocationID:   req.LocationID,
		IsActive:     true,
	}

	if err := database.DB.Create(&sp).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create salesperson (code or email might be duplicate)"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"salesperson": sp})
}

func (h *AdminHandler) ListSalespersons(c *gin.Context) {
	var salespersons []models.Salesperson
	if err := database.DB.Preload("Location").Find(&salespersons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch salespersons"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"salespersons": salespersons})
}

func (h *AdminHandler) GetSalesperson(c *gin.Context) {
	id := c.Param("id")

	var sp models.Salesperson
	if err := database.DB.Preload("Location").First(&sp, "id = ?", id).Error; err != nil {
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

type UpdateSalespersonRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	LocationID *uint  `json:"location_id"`
	IsActive   *bool  `json:"is_active"`
}

func (h *AdminHandler) UpdateSalesperson(c *gin.Context) {
	id := c.Param("id")

	var req UpdateSalespersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sp models.Salesperson
	if err := database.DB.First(&sp, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Salesperson not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.LocationID != nil {
		updates["location_id"] = *req.LocationID
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := database.DB.Model(&sp).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update salesperson"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"salesperson": sp})
}

func (h *AdminHandler) DeleteSalesperson(c *gin.Context) {
	id := c.Param("id")

	// A salesperson still holding products cannot be removed; their products
	// must be returned to inventory first.
	var held int64
	database.DB.Model(&models.Product{}).
		Where("salesperson_id = ? AND state IN ?", id,
			[]models.ProductState{models.StatePendingAcceptance, models.StateInHand, models.StateReturnApplied}).
		Count(&held)
	if held > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("Salesperson still holds %d products", held)})
		return
	}

	if err := database.DB.Delete(&models.Salesperson{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete salesperson"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Salesperson deleted"})
}

type CreateLocationRequest struct {
	Name      string  `json:"name" binding:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *AdminHandler) CreateLocation(c *gin.Context) {
	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location := models.Location{
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	if err := database.DB.Create(&location).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create location (name might be duplicate)"})
		return
	}
	c.JSON(http.StatusCreated, location)
}

func (h *AdminHandler) ListLocations(c *gin.Context) {
	var locations []models.Location
	if err := database.DB.Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

func (h *AdminHandler) GetLocation(c *gin.Context) {
	var location models.Location
	if err := database.DB.First(&location, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	c.JSON(http.StatusOK, location)
}

func (h *AdminHandler) DeleteLocation(c *gin.Context) {
	id := c.Param("id")

	var tagged int64
	database.DB.Model(&models.Salesperson{}).Where("location_id = ?", id).Count(&tagged)
	if tagged > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Location is still assigned to salespersons"})
		return
	}

	if err := database.DB.Delete(&models.Location{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Location deleted"})
}

// GetLogs pages through the transition audit trail, newest first.
func (h *AdminHandler) GetLogs(c *gin.Context) {
	page := 1
	limit := 20
	if c.Query("page") != "" {
		fmt.Sscanf(c.Query("page"), "%d", &page)
	}
	if c.Query("limit") != "" {
		fmt.Sscanf(c.Query("limit"), "%d", &limit)
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	var total int64
	database.DB.Model(&models.TransitionLog{}).Count(&total)

	var logs []models.TransitionLog
	if err := database.DB.Order("id desc").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}
