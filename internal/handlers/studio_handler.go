package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VelvetStudioBR/studio-booking/internal/middleware"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
	"github.com/VelvetStudioBR/studio-booking/internal/timezone"
)

type StudioHandler struct {
	db *gorm.DB
}

func NewStudioHandler(db *gorm.DB) *StudioHandler {
	return &StudioHandler{db: db}
}

type StudioUpdateRequest struct {
	Name          *string  `json:"name"`
	Phone         *string  `json:"phone"`
	Address       *string  `json:"address"`
	Timezone      *string  `json:"timezone"`
	DepositAmount *float64 `json:"deposit_amount"`
}

func (h *StudioHandler) GetMeStudio(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	var studio models.Studio
	if err := h.db.First(&studio, studioID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "studio_not_found"})
		return
	}

	c.JSON(http.StatusOK, studio)
}

func (h *StudioHandler) UpdateMeStudio(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	var req StudioUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var studio models.Studio
	if err := h.db.First(&studio, studioID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "studio_not_found"})
		return
	}

	if req.Name != nil {
		studio.Name = *req.Name
	}
	if req.Phone != nil {
		studio.Phone = *req.Phone
	}
	if req.Address != nil {
		studio.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_timezone"})
			return
		}
		studio.Timezone = *req.Timezone
	}
	if req.DepositAmount != nil {
		studio.DepositAmount = *req.DepositAmount
	}

	if err := h.db.Save(&studio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_studio"})
		return
	}

	c.JSON(http.StatusOK, studio)
}
