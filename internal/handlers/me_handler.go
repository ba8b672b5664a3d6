package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VelvetStudioBR/studio-booking/internal/middleware"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, _ := c.Get(middleware.ContextUserID)
	userID := userIDVal.(uint)

	var user models.User
	if err := h.db.Preload("Studio").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"role":      user.Role,
		"studio_id": user.StudioID,
		"studio": gin.H{
			"id":       user.Studio.ID,
			"name":     user.Studio.Name,
			"slug":     user.Studio.Slug,
			"timezone": user.Studio.Timezone,
		},
	})
}
