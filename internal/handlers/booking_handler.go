package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/httperr"
	"github.com/VelvetStudioBR/studio-booking/internal/middleware"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
	"github.com/VelvetStudioBR/studio-booking/internal/storage"
	ucBooking "github.com/VelvetStudioBR/studio-booking/internal/usecase/booking"
)

type BookingHandler struct {
	createUC      *ucBooking.CreateBooking
	confirmUC     *ucBooking.ConfirmBooking
	cancelUC      *ucBooking.CancelBooking
	completeUC    *ucBooking.CompleteBooking
	deleteUC      *ucBooking.DeleteBooking
	listByDateUC  *ucBooking.ListBookingsByDate
	listByMonthUC *ucBooking.ListBookingsByMonth
	availUC       *ucBooking.GetAvailability

	db       *gorm.DB
	uploader *storage.Uploader
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	confirmUC *ucBooking.ConfirmBooking,
	cancelUC *ucBooking.CancelBooking,
	completeUC *ucBooking.CompleteBooking,
	deleteUC *ucBooking.DeleteBooking,
	listByDateUC *ucBooking.ListBookingsByDate,
	listByMonthUC *ucBooking.ListBookingsByMonth,
	availUC *ucBooking.GetAvailability,
	db *gorm.DB,
	uploader *storage.Uploader,
) *BookingHandler {
	return &BookingHandler{
		createUC:      createUC,
		confirmUC:     confirmUC,
		cancelUC:      cancelUC,
		completeUC:    completeUC,
		deleteUC:      deleteUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
		availUC:       availUC,
		db:            db,
		uploader:      uploader,
	}
}

// --------- Requests ---------

type WalkInBookingRequest struct {
	ClientName  string  `json:"client_name" binding:"required"`
	ClientPhone string  `json:"client_phone"`
	ClientEmail string  `json:"client_email"`
	DesignName  string  `json:"design_name"`
	Date        string  `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string  `json:"time" binding:"required"` // slot label
	TotalAmount float64 `json:"total_amount"`
	AmountPaid  float64 `json:"amount_paid"`
	Notes       string  `json:"notes"`
}

type CompleteBookingRequest struct {
	AmountPaid float64 `json:"amount_paid"`
}

// --------- Walk-in create ---------

func (h *BookingHandler) Create(c *gin.Context) {
	studioID, userID := adminIdentity(c)

	var req WalkInBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	bk, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		StudioID:    studioID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		DesignName:  req.DesignName,
		Date:        req.Date,
		Time:        req.Time,
		Source:      domain.SourceWalkIn,
		TotalAmount: req.TotalAmount,
		AmountPaid:  req.AmountPaid,
		Notes:       req.Notes,
		UserID:      &userID,
	})
	if err != nil {
		mapBookingError(c, err, true)
		return
	}

	c.JSON(http.StatusCreated, bk)
}

// --------- Availability (admin view, occupant metadata included) ---------

func (h *BookingHandler) Availability(c *gin.Context) {
	studioID, _ := adminIdentity(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	slots, err := h.availUC.Execute(c.Request.Context(), studioID, dateStr)
	if err != nil {
		mapBookingError(c, err, true)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// --------- Listings ---------

func (h *BookingHandler) ListByDate(c *gin.Context) {
	studioID, _ := adminIdentity(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	items, err := h.listByDateUC.Execute(c.Request.Context(), studioID, dateStr)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     dateStr,
		"bookings": items,
	})
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	studioID, _ := adminIdentity(c)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "year and month query parameters are required.")
		return
	}

	days, err := h.listByMonthUC.Execute(c.Request.Context(), studioID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  days,
	})
}

// --------- State changes ---------

func (h *BookingHandler) Confirm(c *gin.Context) {
	studioID, userID := adminIdentity(c)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	bk, err := h.confirmUC.Execute(c.Request.Context(), studioID, &userID, bookingID)
	if err != nil {
		mapBookingError(c, err, true)
		return
	}

	c.JSON(http.StatusOK, bk)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	studioID, userID := adminIdentity(c)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	bk, err := h.cancelUC.Execute(c.Request.Context(), studioID, &userID, bookingID)
	if err != nil {
		mapBookingError(c, err, true)
		return
	}

	c.JSON(http.StatusOK, bk)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	studioID, userID := adminIdentity(c)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var req CompleteBookingRequest
	_ = c.ShouldBindJSON(&req) // body optional

	bk, err := h.completeUC.Execute(c.Request.Context(), studioID, &userID, bookingID, req.AmountPaid)
	if err != nil {
		mapBookingError(c, err, true)
		return
	}

	c.JSON(http.StatusOK, bk)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	studioID, userID := adminIdentity(c)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), studioID, &userID, bookingID); err != nil {
		mapBookingError(c, err, true)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// --------- Receipt upload ---------

func (h *BookingHandler) UploadReceipt(c *gin.Context) {
	studioID, _ := adminIdentity(c)

	bookingID, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var bk models.Booking
	if err := h.db.
		Where("id = ? AND studio_id = ?", bookingID, studioID).
		First(&bk).Error; err != nil {

		httperr.NotFound(c, "booking_not_found", "Booking not found.")
		return
	}

	data, ok := readImageUpload(c)
	if !ok {
		return
	}

	encoded, err := storage.ReencodeWebP(data)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The uploaded file is not a valid image.")
		return
	}

	key := fmt.Sprintf("receipts/%s-%s.webp", bk.BookingCode, uuid.NewString())
	url, err := h.uploader.Upload(c.Request.Context(), key, encoded, "image/webp")
	if err != nil {
		httperr.Internal(c, "failed_to_upload_receipt", "Could not store the receipt.")
		return
	}

	bk.ReceiptURL = url
	if err := h.db.Save(&bk).Error; err != nil {
		httperr.Internal(c, "failed_to_update_booking", "Could not update the booking.")
		return
	}

	c.JSON(http.StatusOK, bk)
}

// --------- Helpers ---------

func adminIdentity(c *gin.Context) (studioID uint, userID uint) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	userIDVal, _ := c.Get(middleware.ContextUserID)
	return studioIDVal.(uint), userIDVal.(uint)
}

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return 0, false
	}
	return uint(id), true
}

// mapBookingError translates domain and business errors into HTTP replies.
// withOccupant controls whether a conflict message names the occupying
// client; public responses never carry client identity.
func mapBookingError(c *gin.Context, err error, withOccupant bool) {
	var conflict domain.ConflictError
	if errors.As(err, &conflict) {
		msg := fmt.Sprintf("The %s slot on %s is already taken.", conflict.Time, conflict.Date)
		if withOccupant && conflict.ClientName != "" {
			msg = fmt.Sprintf("The %s slot on %s is already taken by %s.",
				conflict.Time, conflict.Date, conflict.ClientName)
		}
		httperr.Conflict(c, "slot_taken", msg)
		return
	}

	switch {
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Invalid date; expected YYYY-MM-DD.")
	case httperr.IsBusiness(err, "invalid_time"):
		httperr.BadRequest(c, "invalid_time", "The requested time is not an offerable slot for that date.")
	case httperr.IsBusiness(err, "day_blocked"):
		httperr.Conflict(c, "day_blocked", "The studio is closed on that date.")
	case httperr.IsBusiness(err, "slot_in_past"):
		httperr.BadRequest(c, "slot_in_past", "That time has already passed.")
	case httperr.IsBusiness(err, "booking_not_found"):
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "The booking is not in a state that allows this change.")
	default:
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}
