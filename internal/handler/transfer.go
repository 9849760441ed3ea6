package handler

import (
	"net/http"

	"btc-backoffice/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TransferHandler exposes the bulk assignment and return workflows. Every
// response is a per-item result array; partial success is normal and the
// client is expected to inspect each entry.
type TransferHandler struct {
	svc *service.Transfer
}

func NewTransferHandler(db *gorm.DB) *TransferHandler {
	return &TransferHandler{svc: service.NewTransfer(db)}
}

type AssignRequest struct {
	ProductIDs    []uint `json:"product_ids" binding:"required"`
	SalespersonID uint   `json:"salesperson_id" binding:"required"`
}

func (h *TransferHandler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.svc.Assign(c.Request.Context(), req.ProductIDs, req.SalespersonID, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type RespondAssignmentRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required"`
	Decision   string `json:"decision" binding:"required"`
}

func (h *TransferHandler) RespondAssignment(c *gin.Context) {
	var req RespondAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.svc.RespondToAssignment(c.Request.Context(), req.ProductIDs, req.Decision, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type ApplyReturnRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required"`
}

func (h *TransferHandler) ApplyReturn(c *gin.Context) {
	var req ApplyReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.svc.ApplyReturn(c.Request.Context(), req.ProductIDs, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type RespondReturnRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required"`
	Decision   string `json:"decision" binding:"required"`
}

func (h *TransferHandler) RespondReturn(c *gin.Context) {
	var req RespondReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.svc.RespondToReturn(c.Request.Context(), req.ProductIDs, req.Decision, actorFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
