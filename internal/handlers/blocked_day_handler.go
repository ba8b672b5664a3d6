package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VelvetStudioBR/studio-booking/internal/audit"
	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/httperr"
	infraRepo "github.com/VelvetStudioBR/studio-booking/internal/infra/repository"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
	"github.com/VelvetStudioBR/studio-booking/internal/timezone"
)

type BlockedDayHandler struct {
	db    *gorm.DB
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewBlockedDayHandler(db *gorm.DB, auditDispatcher *audit.Dispatcher) *BlockedDayHandler {
	return &BlockedDayHandler{
		db:    db,
		repo:  infraRepo.NewBookingGormRepository(db),
		audit: auditDispatcher,
	}
}

type BlockDayRequest struct {
	Reason string `json:"reason"`
}

func (h *BlockedDayHandler) List(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	if from == "" || to == "" {
		httperr.BadRequest(c, "missing_range", "Query parameters from and to are required.")
		return
	}

	days, err := h.repo.ListBlockedDays(c.Request.Context(), from, to)
	if err != nil {
		httperr.Internal(c, "failed_to_list_blocked_days", "Could not list blocked days.")
		return
	}

	c.JSON(http.StatusOK, days)
}

func (h *BlockedDayHandler) Set(c *gin.Context) {
	studioID, userID := adminIdentity(c)
	dateStr := c.Param("date")

	if !h.validDate(c, dateStr) {
		return
	}

	var req BlockDayRequest
	_ = c.ShouldBindJSON(&req) // reason optional

	day := &models.BlockedDay{
		StudioID: studioID,
		Date:     dateStr,
		Reason:   req.Reason,
	}

	if err := h.repo.SetBlockedDay(c.Request.Context(), day); err != nil {
		httperr.Internal(c, "failed_to_block_day", "Could not block the day.")
		return
	}

	h.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   "day_blocked",
		Entity:   "blocked_day",
		Metadata: map[string]string{"date": dateStr, "reason": req.Reason},
	})

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "blocked": true})
}

func (h *BlockedDayHandler) Clear(c *gin.Context) {
	studioID, userID := adminIdentity(c)
	dateStr := c.Param("date")

	if !h.validDate(c, dateStr) {
		return
	}

	if err := h.repo.ClearBlockedDay(c.Request.Context(), dateStr); err != nil {
		httperr.Internal(c, "failed_to_unblock_day", "Could not unblock the day.")
		return
	}

	h.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   "day_unblocked",
		Entity:   "blocked_day",
		Metadata: map[string]string{"date": dateStr},
	})

	c.JSON(http.StatusOK, gin.H{"date": dateStr, "blocked": false})
}

func (h *BlockedDayHandler) validDate(c *gin.Context, dateStr string) bool {
	if _, err := domain.ParseDate(dateStr, timezone.Location("")); err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date; expected YYYY-MM-DD.")
		return false
	}
	return true
}
