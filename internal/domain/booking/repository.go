package booking

import (
	"context"

	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

type Repository interface {
	// -------- Studio --------
	GetStudioByID(
		ctx context.Context,
		id uint,
	) (*models.Studio, error)

	GetStudioBySlug(
		ctx context.Context,
		slug string,
	) (*models.Studio, error)

	// -------- Booking (create / conflict) --------

	// CreateBooking persists the booking and its slot claim in one
	// transaction. A claim collision surfaces as ConflictError.
	CreateBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	// SaveBooking persists status changes; when the booking is cancelled
	// its slot claim is released in the same transaction.
	SaveBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		bookingID uint,
		studioID uint,
	) (*models.Booking, error)

	GetBookingByCode(
		ctx context.Context,
		code string,
	) (*models.Booking, error)

	// -------- Availability --------

	// ListActiveByDate returns the date's non-cancelled bookings.
	ListActiveByDate(
		ctx context.Context,
		date string,
	) ([]models.Booking, error)

	ListActiveByDateRange(
		ctx context.Context,
		from string,
		to string,
	) ([]models.Booking, error)

	IsDayBlocked(
		ctx context.Context,
		date string,
	) (bool, error)

	SetBlockedDay(
		ctx context.Context,
		day *models.BlockedDay,
	) error

	ClearBlockedDay(
		ctx context.Context,
		date string,
	) error

	ListBlockedDays(
		ctx context.Context,
		from string,
		to string,
	) ([]models.BlockedDay, error)

	// -------- Listings --------
	ListByDate(
		ctx context.Context,
		studioID uint,
		date string,
	) ([]models.Booking, error)

	ListByMonth(
		ctx context.Context,
		studioID uint,
		year int,
		month int,
	) ([]models.Booking, error)
}
