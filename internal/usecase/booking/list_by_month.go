package booking

import (
	"context"

	domain "github.com/VelvetStudioBR/studio-booking/internal/domain/booking"
)

// DaySummary feeds the admin calendar view: per-day counts, no row detail.
type DaySummary struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Pending   int    `json:"pending"`
	Confirmed int    `json:"confirmed"`
	Completed int    `json:"completed"`
	Cancelled int    `json:"cancelled"`
}

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(repo domain.Repository) *ListBookingsByMonth {
	return &ListBookingsByMonth{repo: repo}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	studioID uint,
	year int,
	month int,
) ([]DaySummary, error) {

	bookings, err := uc.repo.ListByMonth(ctx, studioID, year, month)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*DaySummary)
	order := make([]string, 0)

	for _, bk := range bookings {
		sum, ok := byDate[bk.Date]
		if !ok {
			sum = &DaySummary{Date: bk.Date}
			byDate[bk.Date] = sum
			order = append(order, bk.Date)
		}

		sum.Total++
		switch domain.Status(bk.Status) {
		case domain.StatusPending:
			sum.Pending++
		case domain.StatusConfirmed:
			sum.Confirmed++
		case domain.StatusCompleted:
			sum.Completed++
		case domain.StatusCancelled:
			sum.Cancelled++
		}
	}

	out := make([]DaySummary, 0, len(order))
	for _, date := range order {
		out = append(out, *byDate[date])
	}
	return out, nil
}
