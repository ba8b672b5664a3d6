package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/VelvetStudioBR/studio-booking/internal/middleware"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
	"github.com/VelvetStudioBR/studio-booking/internal/storage"
)

const maxUploadBytes = 8 << 20 // 8 MB

type DesignHandler struct {
	db       *gorm.DB
	uploader *storage.Uploader
}

func NewDesignHandler(db *gorm.DB, uploader *storage.Uploader) *DesignHandler {
	return &DesignHandler{db: db, uploader: uploader}
}

type DesignRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Active      *bool   `json:"active"`
}

func (h *DesignHandler) List(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	var designs []models.Design
	if err := h.db.
		Where("studio_id = ?", studioID).
		Order("id ASC").
		Find(&designs).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_designs"})
		return
	}

	c.JSON(http.StatusOK, designs)
}

func (h *DesignHandler) Create(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	var req DesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	design := models.Design{
		StudioID:    studioID,
		Name:        req.Name,
		Category:    strings.ToLower(strings.TrimSpace(req.Category)),
		Description: req.Description,
		Price:       req.Price,
		Active:      true,
	}
	if req.Active != nil {
		design.Active = *req.Active
	}

	if err := h.db.Create(&design).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_design"})
		return
	}

	c.JSON(http.StatusCreated, design)
}

func (h *DesignHandler) Update(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	design, ok := h.findDesign(c, studioID)
	if !ok {
		return
	}

	var req DesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	design.Name = req.Name
	design.Category = strings.ToLower(strings.TrimSpace(req.Category))
	design.Description = req.Description
	design.Price = req.Price
	if req.Active != nil {
		design.Active = *req.Active
	}

	if err := h.db.Save(design).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_design"})
		return
	}

	c.JSON(http.StatusOK, design)
}

func (h *DesignHandler) UploadImage(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	design, ok := h.findDesign(c, studioID)
	if !ok {
		return
	}

	data, ok := readImageUpload(c)
	if !ok {
		return
	}

	encoded, err := storage.ReencodeWebP(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_image"})
		return
	}

	key := fmt.Sprintf("designs/%d-%s.webp", design.ID, uuid.NewString())
	url, err := h.uploader.Upload(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_upload_image"})
		return
	}

	design.ImageURL = url
	if err := h.db.Save(design).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_design"})
		return
	}

	c.JSON(http.StatusOK, design)
}

func (h *DesignHandler) findDesign(c *gin.Context, studioID uint) (*models.Design, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_design_id"})
		return nil, false
	}

	var design models.Design
	if err := h.db.
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&design).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "design_not_found"})
		return nil, false
	}

	return &design, true
}

// readImageUpload pulls the "image" file out of a multipart form, bounded
// by maxUploadBytes.
func readImageUpload(c *gin.Context) ([]byte, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing_image_file"})
		return nil, false
	}

	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_too_large"})
		return nil, false
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_read_image"})
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_read_image"})
		return nil, false
	}

	return data, true
}
