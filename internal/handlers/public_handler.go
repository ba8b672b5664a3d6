package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/VelvetStudioBR/studio-booking/internal/cache"
	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/httperr"
	"github.com/VelvetStudioBR/studio-booking/internal/mirror"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
	"github.com/VelvetStudioBR/studio-booking/internal/payments"
	"github.com/VelvetStudioBR/studio-booking/internal/timezone"
	ucBooking "github.com/VelvetStudioBR/studio-booking/internal/usecase/booking"
)

type PublicHandler struct {
	db       *gorm.DB
	store    *cache.MirrorStore
	mirror   *mirror.Dispatcher
	createUC *ucBooking.CreateBooking
	availUC  *ucBooking.GetAvailability
	gateway  *payments.MercadoPago
	log      *zap.Logger
}

func NewPublicHandler(
	db *gorm.DB,
	store *cache.MirrorStore,
	mirrorDispatcher *mirror.Dispatcher,
	createUC *ucBooking.CreateBooking,
	availUC *ucBooking.GetAvailability,
	gateway *payments.MercadoPago,
	log *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		store:    store,
		mirror:   mirrorDispatcher,
		createUC: createUC,
		availUC:  availUC,
		gateway:  gateway,
		log:      log,
	}
}

// --------- DTOs ---------

type PublicBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	DesignName  string `json:"design_name"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // slot label
	Notes       string `json:"notes"`
}

// --------- Designs ---------

func (h *PublicHandler) ListDesigns(c *gin.Context) {
	slug := c.Param("slug")

	var studio models.Studio
	if err := h.db.Where("slug = ?", slug).First(&studio).Error; err != nil {
		httperr.NotFound(c, "studio_not_found", "Studio not found.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("studio_id = ? AND active = true", studio.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var designs []models.Design
	if err := q.Order("id ASC").Find(&designs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_designs", "Could not list designs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"studio":  gin.H{"name": studio.Name, "slug": studio.Slug},
		"designs": designs,
	})
}

// --------- Availability (mirror-first, identity stripped) ---------

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")

	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	var studio models.Studio
	if err := h.db.Where("slug = ?", slug).First(&studio).Error; err != nil {
		httperr.NotFound(c, "studio_not_found", "Studio not found.")
		return
	}

	loc := timezone.Location(studio.Timezone)
	date, err := domain.ParseDate(dateStr, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date; expected YYYY-MM-DD.")
		return
	}

	var blockedCount int64
	if err := h.db.Model(&models.BlockedDay{}).
		Where("date = ?", dateStr).
		Count(&blockedCount).Error; err != nil {

		// A store failure must not render a misleading "all free" page.
		httperr.Write(c, http.StatusServiceUnavailable,
			"availability_unavailable", "Availability is temporarily unavailable.")
		return
	}
	blocked := blockedCount > 0

	entry, mirrErr := h.store.Get(c.Request.Context(), dateStr)
	if mirrErr == nil && entry != nil {
		// Mirror hit: rebuild slot states from taken labels alone.
		placeholders := make([]models.Booking, 0, len(entry.TakenTimes))
		for _, label := range entry.TakenTimes {
			placeholders = append(placeholders, models.Booking{Time: label})
		}

		now := timezone.NowIn(studio.Timezone)
		slots := domain.StripOccupants(
			domain.ComputeAvailability(date, placeholders, blocked, now),
		)

		c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": slots})
		return
	}

	if mirrErr != nil {
		h.log.Warn("mirror read failed, falling back to live availability",
			zap.String("date", dateStr),
			zap.Error(mirrErr),
		)
	}

	slots, err := h.availUC.Execute(c.Request.Context(), studio.ID, dateStr)
	if err != nil {
		httperr.Write(c, http.StatusServiceUnavailable,
			"availability_unavailable", "Availability is temporarily unavailable.")
		return
	}

	// Backfill the mirror for the next reader.
	h.mirror.Enqueue(dateStr)

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": domain.StripOccupants(slots),
	})
}

// --------- Online booking ---------

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	var studio models.Studio
	if err := h.db.Where("slug = ?", slug).First(&studio).Error; err != nil {
		httperr.NotFound(c, "studio_not_found", "Studio not found.")
		return
	}

	var req PublicBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	bk, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		StudioID:    studio.ID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		DesignName:  req.DesignName,
		Date:        req.Date,
		Time:        req.Time,
		Source:      domain.SourceOnline,
		Notes:       req.Notes,
	})
	if err != nil {
		mapBookingError(c, err, false)
		return
	}

	resp := gin.H{
		"booking_code": bk.BookingCode,
		"date":         bk.Date,
		"time":         bk.Time,
		"status":       bk.Status,
	}

	// Deposit link is best effort: a payment gateway hiccup must not undo
	// a booked slot.
	if h.gateway != nil && studio.DepositAmount > 0 {
		link, perr := h.gateway.CreateDepositPreference(
			c.Request.Context(), bk, studio.DepositAmount,
		)
		if perr != nil {
			h.log.Warn("deposit preference failed",
				zap.String("booking_code", bk.BookingCode),
				zap.Error(perr),
			)
		} else {
			bk.PaymentRef = link.PreferenceID
			if err := h.db.Save(bk).Error; err != nil {
				h.log.Warn("failed to store payment ref",
					zap.String("booking_code", bk.BookingCode),
					zap.Error(err),
				)
			}
			resp["deposit"] = link
		}
	}

	c.JSON(http.StatusCreated, resp)
}

// --------- Booking lookup by code ---------

func (h *PublicHandler) GetBookingByCode(c *gin.Context) {
	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))

	var bk models.Booking
	if err := h.db.Where("booking_code = ?", code).First(&bk).Error; err != nil {
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"booking_code": bk.BookingCode,
		"date":         bk.Date,
		"time":         domain.Canonical(bk.Time),
		"status":       bk.Status,
		"design_name":  bk.DesignName,
		"total_amount": bk.TotalAmount,
		"amount_paid":  bk.AmountPaid,
	})
}
