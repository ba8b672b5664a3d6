package booking

import (
	"context"

	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
	"github.com/VelvetStudioBR/studio-booking/internal/models"
)

type BookingListItem struct {
	ID          uint    `json:"id"`
	BookingCode string  `json:"booking_code"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Status      string  `json:"status"`
	Source      string  `json:"source"`
	ClientName  string  `json:"client_name"`
	ClientPhone string  `json:"client_phone"`
	DesignName  string  `json:"design_name"`
	TotalAmount float64 `json:"total_amount"`
	AmountPaid  float64 `json:"amount_paid"`
}

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(repo domain.Repository) *ListBookingsByDate {
	return &ListBookingsByDate{repo: repo}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	studioID uint,
	date string,
) ([]BookingListItem, error) {

	bookings, err := uc.repo.ListByDate(ctx, studioID, date)
	if err != nil {
		return nil, err
	}

	return toListItems(bookings), nil
}

func toListItems(bookings []models.Booking) []BookingListItem {
	items := make([]BookingListItem, 0, len(bookings))
	for _, bk := range bookings {
		items = append(items, BookingListItem{
			ID:          bk.ID,
			BookingCode: bk.BookingCode,
			Date:        bk.Date,
			Time:        domain.Canonical(bk.Time),
			Status:      bk.Status,
			Source:      bk.Source,
			ClientName:  bk.ClientName,
			ClientPhone: bk.ClientPhone,
			DesignName:  bk.DesignName,
			TotalAmount: bk.TotalAmount,
			AmountPaid:  bk.AmountPaid,
		})
	}
	return items
}
