package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Studio
// --------------------------------------------------

func (r *BookingGormRepository) GetStudioByID(
	ctx context.Context,
	id uint,
) (*models.Studio, error) {

	var studio models.Studio
	if err := r.db.WithContext(ctx).First(&studio, id).Error; err != nil {
		return nil, err
	}
	return &studio, nil
}

func (r *BookingGormRepository) GetStudioBySlug(
	ctx context.Context,
	slug string,
) (*models.Studio, error) {

	var studio models.Studio
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&studio).Error; err != nil {
		return nil, err
	}
	return &studio, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	bk *models.Booking,
) error {

	canonical := domain.Canonical(bk.Time)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bk).Error; err != nil {
			return err
		}

		claim := models.SlotClaim{
			Date:      bk.Date,
			Time:      canonical,
			BookingID: bk.ID,
		}
		return tx.Create(&claim).Error
	})

	if err == nil {
		return nil
	}

	if isUniqueViolation(err) {
		return r.conflictFor(ctx, bk.Date, canonical)
	}
	return err
}

// conflictFor resolves the occupant behind a claim collision. Stored times
// may be in either 12h or 24h form, so matching happens on canonical labels.
func (r *BookingGormRepository) conflictFor(
	ctx context.Context,
	date string,
	canonical string,
) error {

	existing, err := r.ListActiveByDate(ctx, date)
	if err == nil {
		for _, bk := range existing {
			if domain.Canonical(bk.Time) == canonical {
				return domain.ConflictError{
					Date:       date,
					Time:       canonical,
					ClientName: bk.ClientName,
				}
			}
		}
	}

	return domain.ConflictError{Date: date, Time: canonical}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// --------------------------------------------------
// Booking (state change / delete)
// --------------------------------------------------

func (r *BookingGormRepository) SaveBooking(
	ctx context.Context,
	bk *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(bk).Error; err != nil {
			return err
		}

		if bk.Status == string(domain.StatusCancelled) {
			return tx.
				Where("booking_id = ?", bk.ID).
				Delete(&models.SlotClaim{}).Error
		}
		return nil
	})
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	bk *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("booking_id = ?", bk.ID).
			Delete(&models.SlotClaim{}).Error; err != nil {
			return err
		}
		return tx.Delete(bk).Error
	})
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	bookingID uint,
	studioID uint,
) (*models.Booking, error) {

	var bk models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", bookingID, studioID).
		First(&bk).Error; err != nil {
		return nil, err
	}

	return &bk, nil
}

func (r *BookingGormRepository) GetBookingByCode(
	ctx context.Context,
	code string,
) (*models.Booking, error) {

	var bk models.Booking
	if err := r.db.WithContext(ctx).
		Where("booking_code = ?", code).
		First(&bk).Error; err != nil {
		return nil, err
	}

	return &bk, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveByDate(
	ctx context.Context,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("date = ? AND status <> ?", date, string(domain.StatusCancelled)).
		Order("id ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListActiveByDateRange(
	ctx context.Context,
	from string,
	to string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"date >= ? AND date <= ? AND status <> ?",
			from, to, string(domain.StatusCancelled),
		).
		Order("date ASC, id ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) IsDayBlocked(
	ctx context.Context,
	date string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BlockedDay{}).
		Where("date = ?", date).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *BookingGormRepository) SetBlockedDay(
	ctx context.Context,
	day *models.BlockedDay,
) error {

	var existing models.BlockedDay
	err := r.db.WithContext(ctx).
		Where("date = ?", day.Date).
		First(&existing).Error

	if err == nil {
		existing.Reason = day.Reason
		return r.db.WithContext(ctx).Save(&existing).Error
	}

	return r.db.WithContext(ctx).Create(day).Error
}

func (r *BookingGormRepository) ClearBlockedDay(
	ctx context.Context,
	date string,
) error {
	return r.db.WithContext(ctx).
		Where("date = ?", date).
		Delete(&models.BlockedDay{}).Error
}

func (r *BookingGormRepository) ListBlockedDays(
	ctx context.Context,
	from string,
	to string,
) ([]models.BlockedDay, error) {

	var days []models.BlockedDay
	if err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}

	return days, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListByDate(
	ctx context.Context,
	studioID uint,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("studio_id = ? AND date = ?", studioID, date).
		Order("id ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListByMonth(
	ctx context.Context,
	studioID uint,
	year int,
	month int,
) ([]models.Booking, error) {

	from := fmt.Sprintf("%04d-%02d-01", year, month)

	nextYear, nextMonth := year, month+1
	if nextMonth > 12 {
		nextYear, nextMonth = year+1, 1
	}
	to := fmt.Sprintf("%04d-%02d-01", nextYear, nextMonth)

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where(
			"studio_id = ? AND date >= ? AND date < ?",
			studioID, from, to,
		).
		Order("date ASC, id ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
