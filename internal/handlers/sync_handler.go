package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VelvetStudioBR/studio-booking/internal/httperr"
	"github.com/VelvetStudioBR/studio-booking/internal/mirror"
)

// SyncHandler triggers the calendar reconciliation on demand.
type SyncHandler struct {
	syncer *mirror.Syncer
}

func NewSyncHandler(syncer *mirror.Syncer) *SyncHandler {
	return &SyncHandler{syncer: syncer}
}

func (h *SyncHandler) Run(c *gin.Context) {
	if h.syncer == nil {
		httperr.BadRequest(c, "sync_not_configured", "No calendar feed is configured.")
		return
	}

	result, err := h.syncer.SyncWindow(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "sync_failed", "Calendar sync failed.")
		return
	}

	c.JSON(http.StatusOK, result)
}
